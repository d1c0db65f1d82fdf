package dircmp

import (
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
)

// Filesystem is the subset of billy.Filesystem the comparator reads through.
// osfs.Default serves the host filesystem, memfs.New an in-memory one.
type Filesystem interface {
	billy.Basic
	billy.Dir
}

// Partition classifies the immediate entries of one directory pair.
// Every list holds entry names sorted in ascending order.
type Partition struct {
	Left  string
	Right string

	LeftOnly  []string
	RightOnly []string

	CommonDirs  []string
	CommonFiles []string
	CommonFunny []string // type mismatch or stat failure on either side

	SameFiles  []string
	DiffFiles  []string
	FunnyFiles []string // quick comparison failed
}

// HasDifferences reports whether the pair differs structurally or a common
// file failed the fast-path signature check.
func (p *Partition) HasDifferences() bool {
	return len(p.LeftOnly) > 0 || len(p.RightOnly) > 0 || len(p.DiffFiles) > 0
}

// Uncomparable returns the entries that could be neither matched nor diffed.
func (p *Partition) Uncomparable() []string {
	if len(p.CommonFunny) == 0 && len(p.FunnyFiles) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.CommonFunny)+len(p.FunnyFiles))
	names = append(names, p.CommonFunny...)
	names = append(names, p.FunnyFiles...)
	return names
}

// Signature is the cheap stat triple used before any content is read
type Signature struct {
	Type    os.FileMode
	Size    int64
	ModTime time.Time
}

func signatureOf(info os.FileInfo) Signature {
	return Signature{
		Type:    info.Mode().Type(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// Equal reports whether both signatures describe the same file state.
func (s Signature) Equal(other Signature) bool {
	return s.Type == other.Type &&
		s.Size == other.Size &&
		s.ModTime.Equal(other.ModTime)
}
