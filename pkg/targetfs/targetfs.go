package targetfs

import (
	"errors"
	"io/fs"
)

// FS is the set of filesystem operations the engine needs against a target root.
type FS interface {
	Root() string
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
}

// ErrChmodUnsupported is returned by filesystems without a permission model.
var ErrChmodUnsupported = errors.New("chmod not supported by filesystem")

// Exists reports whether name exists. Any stat error counts as absent.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// IsRegular reports whether name exists and is a regular file.
func IsRegular(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
