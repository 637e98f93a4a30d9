package safeio

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrPathEscapesRoot is returned when a path resolves outside its root.
var ErrPathEscapesRoot = errors.New("path escapes target root")

// CleanRelative normalizes a manifest-style path into a clean, slash-separated
// path relative to some root. Leading separators are dropped; paths that climb
// above the root are rejected.
func CleanRelative(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", errors.New("empty path")
	}
	c := path.Clean(p)
	if c == ".." || strings.HasPrefix(c, "../") {
		return "", ErrPathEscapesRoot
	}
	return c, nil
}

// ContainedJoin joins rel onto root and verifies the result stays within root.
func ContainedJoin(root, rel string) (string, error) {
	clean, err := CleanRelative(rel)
	if err != nil {
		return "", err
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.New("failed to resolve root directory")
	}
	full := filepath.Join(rootAbs, filepath.FromSlash(clean))

	r, err := filepath.Rel(rootAbs, full)
	if err != nil {
		return "", errors.New("failed to compute relative path")
	}
	if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", ErrPathEscapesRoot
	}
	return full, nil
}

// WriteFilePreservePerms writes data to path preserving existing file mode when possible.
// When the file does not exist, it uses a sane default of 0644.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	// #nosec G306 -- injected files are meant to be readable by the project
	return os.WriteFile(path, data, mode)
}
