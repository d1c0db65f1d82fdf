package dircmp

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Names that never take part in a comparison. The set is fixed.
var ignoredNames = map[string]struct{}{
	".":           {},
	"..":          {},
	"RCS":         {},
	"CVS":         {},
	"tags":        {},
	".git":        {},
	".hg":         {},
	".bzr":        {},
	"_darcs":      {},
	"__pycache__": {},
}

func isIgnored(name string) bool {
	_, ok := ignoredNames[name]
	return ok
}

// CompareDirectories compares two directory trees, printing what differs.
func CompareDirectories(left, right string, options ...Option) (bool, error) {
	c, err := New(options...)
	if err != nil {
		return false, err
	}

	return c.CompareDirectories(left, right)
}

// CompareDirectories walks left and right in lockstep and reports whether the
// trees are identical. Differences are printed as they are found.
//
// At each level one of two branches runs. If the level has left-only,
// right-only or fast-path-differing entries, they are listed, the differing
// files get a detailed diff, and the walk stops there without descending. If
// the level is clean, every common file is deep-compared and every common
// subdirectory recursed into, stopping at the first failure.
func (c *Comparator) CompareDirectories(left, right string) (bool, error) {
	if err := c.checkDirectory(left); err != nil {
		return false, err
	}

	if err := c.checkDirectory(right); err != nil {
		return false, err
	}

	return c.compareDirectories(left, right)
}

func (c *Comparator) compareDirectories(left, right string) (bool, error) {
	p, err := c.ListDirectory(left, right)
	if err != nil {
		return false, err
	}

	c.logger.Debug("partitioned directory pair",
		slog.String("left", left),
		slog.String("right", right),
		slog.Int("left_only", len(p.LeftOnly)),
		slog.Int("right_only", len(p.RightOnly)),
		slog.Int("diff_files", len(p.DiffFiles)),
		slog.Int("same_files", len(p.SameFiles)),
		slog.Int("common_dirs", len(p.CommonDirs)),
		slog.Int("uncomparable", len(p.Uncomparable())))

	if p.HasDifferences() {
		return c.reportDifferences(p)
	}

	if funny := p.Uncomparable(); len(funny) > 0 {
		c.report.paths("Entries that could not be compared:", left, funny, c.join)
		return false, nil
	}

	for _, name := range p.CommonFiles {
		same, err := c.CompareFiles(c.join(left, name), c.join(right, name))
		if err != nil || !same {
			return false, err
		}
	}

	for _, name := range p.CommonDirs {
		same, err := c.compareDirectories(c.join(left, name), c.join(right, name))
		if err != nil || !same {
			return false, err
		}
	}

	return true, nil
}

// reportDifferences prints every structural difference of one level and the
// detailed diff of each fast-path-differing file. It never recurses. The
// level only counts as identical when nothing is one-sided or uncomparable
// and every flagged file turns out equal line by line.
func (c *Comparator) reportDifferences(p *Partition) (bool, error) {
	c.logger.Debug("directory pair differs, not descending",
		slog.String("left", p.Left),
		slog.String("right", p.Right))

	c.report.paths("Files only in left folder:", p.Left, p.LeftOnly, c.join)
	c.report.paths("Files only in right folder:", p.Right, p.RightOnly, c.join)

	identical := len(p.LeftOnly) == 0 && len(p.RightOnly) == 0
	if len(p.DiffFiles) > 0 {
		c.report.header("Differing files:")
		for _, name := range p.DiffFiles {
			same, err := c.CompareFiles(c.join(p.Left, name), c.join(p.Right, name))
			if err != nil {
				return false, err
			}
			identical = identical && same
		}
	}

	if funny := p.Uncomparable(); len(funny) > 0 {
		c.report.paths("Entries that could not be compared:", p.Left, funny, c.join)
		identical = false
	}

	return identical, nil
}

// ListDirectory partitions the immediate entries of a directory pair into
// left-only, right-only and common entries, and runs the fast-path check on
// every common file.
func (c *Comparator) ListDirectory(left, right string) (*Partition, error) {
	leftNames, err := c.readNames(left)
	if err != nil {
		return nil, err
	}

	rightNames, err := c.readNames(right)
	if err != nil {
		return nil, err
	}

	p := &Partition{
		Left:  left,
		Right: right,
	}

	rightSet := make(map[string]struct{}, len(rightNames))
	for _, name := range rightNames {
		rightSet[name] = struct{}{}
	}

	leftSet := make(map[string]struct{}, len(leftNames))
	var common []string
	for _, name := range leftNames {
		leftSet[name] = struct{}{}
		if _, ok := rightSet[name]; ok {
			common = append(common, name)
		} else {
			p.LeftOnly = append(p.LeftOnly, name)
		}
	}

	for _, name := range rightNames {
		if _, ok := leftSet[name]; !ok {
			p.RightOnly = append(p.RightOnly, name)
		}
	}

	for _, name := range common {
		c.classifyCommon(p, name)
	}

	for _, name := range p.CommonFiles {
		same, err := c.QuickEqual(c.join(left, name), c.join(right, name))
		switch {
		case err != nil:
			c.logger.Debug("fast-path check failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
			p.FunnyFiles = append(p.FunnyFiles, name)
		case same:
			p.SameFiles = append(p.SameFiles, name)
		default:
			p.DiffFiles = append(p.DiffFiles, name)
		}
	}

	return p, nil
}

// classifyCommon files a name present on both sides by the type of what it
// points to. Only matching directory or regular-file types are comparable.
func (c *Comparator) classifyCommon(p *Partition, name string) {
	leftInfo, leftErr := c.fs.Stat(c.join(p.Left, name))
	rightInfo, rightErr := c.fs.Stat(c.join(p.Right, name))
	if leftErr != nil || rightErr != nil {
		p.CommonFunny = append(p.CommonFunny, name)
		return
	}

	leftType, rightType := leftInfo.Mode().Type(), rightInfo.Mode().Type()
	switch {
	case leftType != rightType:
		p.CommonFunny = append(p.CommonFunny, name)
	case leftType&os.ModeDir != 0:
		p.CommonDirs = append(p.CommonDirs, name)
	case leftInfo.Mode().IsRegular():
		p.CommonFiles = append(p.CommonFiles, name)
	default:
		p.CommonFunny = append(p.CommonFunny, name)
	}
}

// join appends name to dir the way the user spelled dir, so "./l" stays
// "./l/x" in printed paths rather than being cleaned to "l/x".
func (c *Comparator) join(dir, name string) string {
	if dir == "" || strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func (c *Comparator) checkDirectory(path string) error {
	info, err := c.fs.Stat(path)
	if err != nil {
		return classifyPathError(path, err, newStatPathError)
	}

	if !info.IsDir() {
		return newNotDirectoryError(path)
	}

	return nil
}

func (c *Comparator) readNames(path string) ([]string, error) {
	infos, err := c.fs.ReadDir(path)
	if err != nil {
		return nil, classifyPathError(path, err, newReadDirectoryError)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if isIgnored(info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}

	sort.Strings(names)
	return names, nil
}
