package dircmp

import (
	"errors"
	"io/fs"

	"github.com/boostgo/errorx"
)

var (
	ErrPathNotExist     = errorx.New("dircmp.path.not_exist")
	ErrNotDirectory     = errorx.New("dircmp.path.not_directory")
	ErrPermissionDenied = errorx.New("dircmp.path.permission_denied")

	ErrStatPath        = errorx.New("dircmp.path.stat")
	ErrReadDirectory   = errorx.New("dircmp.directory.read")
	ErrOpenFile        = errorx.New("dircmp.file.open")
	ErrReadFile        = errorx.New("dircmp.file.read")
	ErrDecodeFile      = errorx.New("dircmp.file.decode")
	ErrUnknownEncoding = errorx.New("dircmp.encoding.unknown")
	ErrUnknownHash     = errorx.New("dircmp.hash.unknown")
)

type pathErrorContext struct {
	Path  string `json:"path"`
	Error error  `json:"error"`
}

type decodeErrorContext struct {
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Line     int    `json:"line"`
}

type encodingErrorContext struct {
	Name  string `json:"name"`
	Error error  `json:"error"`
}

// classifyPathError maps an OS-level failure to the matching sentinel.
// fallback builds the error when the cause is neither "not exist" nor "permission".
func classifyPathError(path string, err error, fallback func(string, error) error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return newPathNotExistError(path, err)
	case errors.Is(err, fs.ErrPermission):
		return newPermissionDeniedError(path, err)
	default:
		return fallback(path, err)
	}
}

func newPathNotExistError(path string, err error) error {
	return ErrPathNotExist.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newPermissionDeniedError(path string, err error) error {
	return ErrPermissionDenied.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newNotDirectoryError(path string) error {
	return ErrNotDirectory.
		SetData(pathErrorContext{
			Path:  path,
			Error: nil,
		})
}

func newDecodeFileError(path, encoding string, line int) error {
	return ErrDecodeFile.
		SetData(decodeErrorContext{
			Path:     path,
			Encoding: encoding,
			Line:     line,
		})
}

func newUnknownEncodingError(name string, err error) error {
	return ErrUnknownEncoding.
		SetError(err).
		SetData(encodingErrorContext{
			Name:  name,
			Error: err,
		})
}

func newUnknownHashError(hash HashType) error {
	return ErrUnknownHash.
		SetData(struct {
			Hash string `json:"hash"`
		}{
			Hash: string(hash),
		})
}

func newStatPathError(path string, err error) error {
	return ErrStatPath.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newReadDirectoryError(path string, err error) error {
	return ErrReadDirectory.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newOpenFileError(path string, err error) error {
	return ErrOpenFile.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newReadFileError(path string, err error) error {
	return ErrReadFile.SetError(err).SetData(pathErrorContext{
		Path:  path,
		Error: err,
	})
}
