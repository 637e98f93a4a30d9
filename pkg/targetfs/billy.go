package targetfs

import (
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// billyFS implements FS using go-billy
type billyFS struct {
	fs billy.Filesystem
}

// NewBilly creates an FS backed by a go-billy filesystem
func NewBilly(bfs billy.Filesystem) FS {
	return &billyFS{fs: bfs}
}

func (b *billyFS) Root() string { return b.fs.Root() }

func (b *billyFS) Stat(name string) (fs.FileInfo, error) {
	return b.fs.Stat(name)
}

func (b *billyFS) ReadFile(name string) ([]byte, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return util.ReadFile(b.fs, name)
}

func (b *billyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return util.WriteFile(b.fs, name, data, perm)
}

func (b *billyFS) MkdirAll(path string, perm fs.FileMode) error {
	return b.fs.MkdirAll(path, perm)
}

func (b *billyFS) Chmod(name string, mode fs.FileMode) error {
	ch, ok := b.fs.(billy.Change)
	if !ok {
		return ErrChmodUnsupported
	}
	return ch.Chmod(name, mode)
}
