package targetfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/goinject/pkg/safeio"
)

func exercise(t *testing.T, fsys FS) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll("docs/guides", 0o755))
	assert.True(t, IsDir(fsys, "docs/guides"))
	assert.False(t, IsRegular(fsys, "docs/guides"))

	require.NoError(t, fsys.WriteFile("docs/guides/intro.md", []byte("hello"), 0o644))
	assert.True(t, Exists(fsys, "docs/guides/intro.md"))
	assert.True(t, IsRegular(fsys, "docs/guides/intro.md"))

	data, err := fsys.ReadFile("docs/guides/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, fsys.WriteFile("docs/guides/intro.md", []byte("bye"), 0o644))
	data, err = fsys.ReadFile("docs/guides/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))

	_, err = fsys.ReadFile("docs/guides")
	assert.Error(t, err, "reading a directory must fail")

	assert.False(t, Exists(fsys, "missing.txt"))
}

func TestOSFS(t *testing.T) {
	root := t.TempDir()
	fsys := NewOS(root)
	assert.Equal(t, root, fsys.Root())

	exercise(t, fsys)

	_, err := os.Stat(filepath.Join(root, "docs", "guides", "intro.md"))
	assert.NoError(t, err, "file must land under the root")
}

func TestOSFSRejectsEscape(t *testing.T) {
	fsys := NewOS(t.TempDir())

	err := fsys.WriteFile("../escape.txt", []byte("x"), 0o644)
	assert.True(t, errors.Is(err, safeio.ErrPathEscapesRoot))

	_, err = fsys.Stat("../../etc/passwd")
	assert.Error(t, err)
}

func TestOSFSChmod(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no executable bit on windows")
	}
	root := t.TempDir()
	fsys := NewOS(root)
	require.NoError(t, fsys.MkdirAll("scripts", 0o755))
	require.NoError(t, fsys.WriteFile("scripts/run.sh", []byte("#!/bin/sh\n"), 0o644))
	require.NoError(t, fsys.Chmod("scripts/run.sh", 0o755))

	info, err := os.Stat(filepath.Join(root, "scripts", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())

	// rewriting keeps the executable bit
	require.NoError(t, fsys.WriteFile("scripts/run.sh", []byte("#!/bin/sh\necho hi\n"), 0o644))
	info, err = os.Stat(filepath.Join(root, "scripts", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
}

func TestBillyFS(t *testing.T) {
	exercise(t, NewBilly(memfs.New()))
}
