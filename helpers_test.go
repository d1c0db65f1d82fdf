package dircmp

import (
	"bytes"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// newMemTree builds an in-memory filesystem holding files (path -> content).
// A path ending in "/" creates an empty directory.
func newMemTree(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	for name, content := range files {
		if name[len(name)-1] == '/' {
			require.NoError(t, fs.MkdirAll(name, 0755))
			continue
		}
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0644))
	}

	return fs
}

func newTestComparator(t *testing.T, fs Filesystem, options ...Option) (*Comparator, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	options = append([]Option{WithFilesystem(fs), WithOutput(out)}, options...)
	c, err := New(options...)
	require.NoError(t, err)

	return c, out
}

// faultyFS fails Open or ReadDir for chosen paths and defers everything else
// to the wrapped filesystem.
type faultyFS struct {
	Filesystem
	openErr    map[string]error
	readDirErr map[string]error
}

func (f *faultyFS) Open(filename string) (billy.File, error) {
	if err, ok := f.openErr[filename]; ok {
		return nil, &os.PathError{Op: "open", Path: filename, Err: err}
	}
	return f.Filesystem.Open(filename)
}

func (f *faultyFS) ReadDir(path string) ([]os.FileInfo, error) {
	if err, ok := f.readDirErr[path]; ok {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: err}
	}
	return f.Filesystem.ReadDir(path)
}
