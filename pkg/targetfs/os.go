package targetfs

import (
	"io/fs"
	"os"

	"github.com/fulmenhq/goinject/pkg/safeio"
)

// osFS implements FS on the host filesystem, rooted at a directory
type osFS struct {
	root string
}

// NewOS creates an FS rooted at root
func NewOS(root string) FS {
	return &osFS{root: root}
}

func (o *osFS) Root() string { return o.root }

func (o *osFS) resolve(name string) (string, error) {
	return safeio.ContainedJoin(o.root, name)
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	p, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	p, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- p is contained within the target root
	return os.ReadFile(p)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	p, err := o.resolve(name)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(p); statErr == nil {
		return safeio.WriteFilePreservePerms(p, data)
	}
	// #nosec G306 -- injected files are meant to be readable by the project
	return os.WriteFile(p, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	p, err := o.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(p, perm)
}

func (o *osFS) Chmod(name string, mode fs.FileMode) error {
	p, err := o.resolve(name)
	if err != nil {
		return err
	}
	return os.Chmod(p, mode)
}
