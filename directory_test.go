package dircmp

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryComparison(t *testing.T) {
	t.Run("IdenticalTrees", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt":         "one\ntwo\n",
			"/l/sub/b.txt":     "three\n",
			"/l/sub/deep/c.md": "four",
			"/l/empty/":        "",
			"/r/a.txt":         "one\ntwo\n",
			"/r/sub/b.txt":     "three\n",
			"/r/sub/deep/c.md": "four",
			"/r/empty/":        "",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.True(t, same)
		assert.Empty(t, out.String())
	})

	t.Run("WhitespaceOnlyDifferenceIsIdentical", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt": "x\ny\n",
			"/r/a.txt": "x   \n  y\n",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.True(t, same)
		assert.Equal(t, "Differing files:\n", out.String())
	})

	t.Run("DifferingLevelDoesNotDescend", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt":     "x",
			"/l/b.txt":     "z",
			"/l/sub/c.txt": "1",
			"/r/a.txt":     "y",
			"/r/b.txt":     "z",
			"/r/sub/c.txt": "2",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.False(t, same)
		assert.Equal(t, "Differing files:\n"+
			"Difference in file: /l/a.txt\n"+
			"Line 1, Char 1:\n"+
			"- x\n"+
			"- x\n"+
			"+ y\n"+
			"+ y\n", out.String())
		assert.NotContains(t, out.String(), "sub")
	})

	t.Run("OneSidedEntries", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt":    "a",
			"/l/only.txt": "left",
			"/l/odir/":    "",
			"/r/a.txt":    "a",
			"/r/new.txt":  "right",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.False(t, same)
		assert.Equal(t, "Files only in left folder:\n"+
			"/l/odir\n"+
			"/l/only.txt\n"+
			"Files only in right folder:\n"+
			"/r/new.txt\n", out.String())
	})

	t.Run("DeepDifferenceFoundWhenParentsClean", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/top.txt":         "same",
			"/l/sub/deep/f.txt":  "hello\nworld\n",
			"/r/top.txt":         "same",
			"/r/sub/deep/f.txt":  "hello\nworle\n",
			"/l/sub/deep/g.txt":  "g",
			"/r/sub/deep/g.txt":  "g",
			"/l/sub/sibling.txt": "s",
			"/r/sub/sibling.txt": "s",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.False(t, same)
		assert.Contains(t, out.String(), "Difference in file: /l/sub/deep/f.txt\n")
		assert.Contains(t, out.String(), "Line 2, Char 5:\n")
	})

	t.Run("FailingSubdirectoryShortCircuitsSiblings", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a/x.txt": "1",
			"/r/a/x.txt": "2",
			"/l/b/y.txt": "3",
			"/r/b/y.txt": "4",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.False(t, same)
		assert.Contains(t, out.String(), "/l/a/x.txt")
		assert.NotContains(t, out.String(), "/l/b/y.txt")
	})

	t.Run("TypeClashIsUncomparable", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/thing":       "i am a file",
			"/r/thing/x.txt": "i am in a dir",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.False(t, same)
		assert.Equal(t, "Entries that could not be compared:\n/l/thing\n", out.String())
	})

	t.Run("IgnoredNamesAreSkipped", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt":             "a",
			"/l/.git/HEAD":         "ref: main",
			"/l/__pycache__/m.pyc": "bytes",
			"/r/a.txt":             "a",
			"/r/CVS/Root":          "cvs",
		})
		c, out := newTestComparator(t, fs)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.True(t, same)
		assert.Empty(t, out.String())
	})

	t.Run("MissingRoot", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{"/l/a.txt": "a"})
		c, _ := newTestComparator(t, fs)

		_, err := c.CompareDirectories("/l", "/missing")
		require.Error(t, err)
		assert.ErrorContains(t, err, "dircmp.path.not_exist")
	})

	t.Run("RootIsNotDirectory", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt": "a",
			"/file":    "not a dir",
		})
		c, _ := newTestComparator(t, fs)

		_, err := c.CompareDirectories("/file", "/l")
		require.Error(t, err)
		assert.ErrorContains(t, err, "dircmp.path.not_directory")
	})

	t.Run("StrictDecodeErrorPropagates", func(t *testing.T) {
		fs := newMemTree(t, map[string]string{
			"/l/a.txt": "ok\xff",
			"/r/a.txt": "ok!",
		})
		c, _ := newTestComparator(t, fs, WithDecodeMode(DecodeStrict))

		_, err := c.CompareDirectories("/l", "/r")
		require.Error(t, err)
		assert.ErrorContains(t, err, "dircmp.file.decode")
	})

	t.Run("UnreadableFileIsUncomparable", func(t *testing.T) {
		fs := &faultyFS{
			Filesystem: newMemTree(t, map[string]string{
				"/l/a.txt": "x",
				"/r/a.txt": "x",
			}),
			openErr: map[string]error{"/r/a.txt": os.ErrPermission},
		}
		c, out := newTestComparator(t, fs)

		p, err := c.ListDirectory("/l", "/r")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, p.FunnyFiles)
		assert.Empty(t, p.SameFiles)
		assert.Empty(t, p.DiffFiles)

		same, err := c.CompareDirectories("/l", "/r")
		require.NoError(t, err)
		assert.False(t, same)
		assert.Equal(t, "Entries that could not be compared:\n/l/a.txt\n", out.String())
	})

	t.Run("ListingFailures", func(t *testing.T) {
		tree := newMemTree(t, map[string]string{
			"/l/sub/a.txt": "a",
			"/r/sub/a.txt": "a",
		})

		c, _ := newTestComparator(t, &faultyFS{
			Filesystem: tree,
			readDirErr: map[string]error{"/r/sub": errors.New("device error")},
		})
		_, err := c.CompareDirectories("/l", "/r")
		require.Error(t, err)
		assert.ErrorContains(t, err, "dircmp.directory.read")

		c, _ = newTestComparator(t, &faultyFS{
			Filesystem: tree,
			readDirErr: map[string]error{"/l": os.ErrPermission},
		})
		_, err = c.CompareDirectories("/l", "/r")
		require.Error(t, err)
		assert.ErrorContains(t, err, "dircmp.path.permission_denied")
	})

	t.Run("PrintedPathsKeepRootSpelling", func(t *testing.T) {
		root := t.TempDir()
		t.Chdir(root)
		require.NoError(t, os.MkdirAll("l", 0755))
		require.NoError(t, os.MkdirAll("r", 0755))
		require.NoError(t, os.WriteFile(filepath.Join("l", "x"), []byte("x"), 0644))

		out := &bytes.Buffer{}
		same, err := CompareDirectories("./l", "./r/", WithOutput(out))
		require.NoError(t, err)
		assert.False(t, same)
		assert.Equal(t, "Files only in left folder:\n./l/x\n", out.String())
	})

	t.Run("HostFilesystem", func(t *testing.T) {
		root := t.TempDir()
		left, right := filepath.Join(root, "left"), filepath.Join(root, "right")
		for _, dir := range []string{left, right} {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "f.txt"), []byte("body\n"), 0644))
		}

		out := &bytes.Buffer{}
		same, err := CompareDirectories(left, right, WithOutput(out))
		require.NoError(t, err)
		assert.True(t, same)

		require.NoError(t, os.WriteFile(filepath.Join(right, "sub", "g.txt"), []byte("new\n"), 0644))
		same, err = CompareDirectories(left, right, WithOutput(out))
		require.NoError(t, err)
		assert.False(t, same)
		assert.Contains(t, out.String(), "Files only in right folder:\n"+filepath.Join(right, "sub", "g.txt")+"\n")
	})

	t.Run("MatchingSignatureHidesContentChange", func(t *testing.T) {
		root := t.TempDir()
		left, right := filepath.Join(root, "left"), filepath.Join(root, "right")
		require.NoError(t, os.MkdirAll(left, 0755))
		require.NoError(t, os.MkdirAll(right, 0755))

		stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		for dir, body := range map[string]string{left: "abc\n", right: "abd\n"} {
			path := filepath.Join(dir, "f.txt")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			require.NoError(t, os.Chtimes(path, stamp, stamp))
		}

		// The fast path trusts the signature, so the clean branch deep-compares
		// and catches the change.
		out := &bytes.Buffer{}
		same, err := CompareDirectories(left, right, WithOutput(out))
		require.NoError(t, err)
		assert.False(t, same)
		assert.Contains(t, out.String(), "Line 1, Char 3:")
		assert.NotContains(t, out.String(), "Differing files:")
	})
}

func TestListDirectory(t *testing.T) {
	fs := newMemTree(t, map[string]string{
		"/l/same.txt":  "s",
		"/l/diff.txt":  "1",
		"/l/left.txt":  "l",
		"/l/dir/":      "",
		"/l/clash":     "f",
		"/r/same.txt":  "s",
		"/r/diff.txt":  "2",
		"/r/right.txt": "r",
		"/r/dir/":      "",
		"/r/clash/":    "",
	})
	c, _ := newTestComparator(t, fs)

	p, err := c.ListDirectory("/l", "/r")
	require.NoError(t, err)

	assert.Equal(t, []string{"left.txt"}, p.LeftOnly)
	assert.Equal(t, []string{"right.txt"}, p.RightOnly)
	assert.Equal(t, []string{"dir"}, p.CommonDirs)
	assert.Equal(t, []string{"diff.txt", "same.txt"}, p.CommonFiles)
	assert.Equal(t, []string{"clash"}, p.CommonFunny)
	assert.Equal(t, []string{"same.txt"}, p.SameFiles)
	assert.Equal(t, []string{"diff.txt"}, p.DiffFiles)
	assert.Empty(t, p.FunnyFiles)
	assert.True(t, p.HasDifferences())
	assert.Equal(t, []string{"clash"}, p.Uncomparable())
}
