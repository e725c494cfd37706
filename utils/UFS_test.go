package utils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUFS_Dir_File(t *testing.T) {
	tmpDir := t.TempDir()
	dir := MakeDirectory(tmpDir)
	assert.Equal(t, filepath.Clean(tmpDir), dir.String())

	file := UFS.File(filepath.Join(tmpDir, "foo.txt"))
	assert.Equal(t, filepath.Join(tmpDir, "foo.txt"), file.String())
	assert.Equal(t, ".txt", file.Ext())
	assert.Equal(t, "foo", file.TrimExt())
	assert.Equal(t, dir, file.Dirname)
	assert.Equal(t, "foo.sln", file.ReplaceExt(".sln").Basename)
}

func TestUFS_MkdirEx(t *testing.T) {
	tmpDir := t.TempDir()
	dir := MakeDirectory(filepath.Join(tmpDir, "a", "b"))
	require.NoError(t, UFS.MkdirEx(dir))
	assert.True(t, dir.Exists())
	assert.NoError(t, UFS.MkdirEx(dir), "mkdir on an existing directory")

	file := dir.File("c.txt")
	require.NoError(t, os.WriteFile(file.String(), []byte("c"), 0o644))
	assert.Error(t, UFS.MkdirEx(MakeDirectory(file.String())), "mkdir over a regular file")
}

func TestUFS_CreateBuffered_ReadAll(t *testing.T) {
	file := UFS.File(filepath.Join(t.TempDir(), "nested", "file.txt"))
	require.NoError(t, UFS.CreateBuffered(file, func(w io.Writer) error {
		_, err := io.WriteString(w, "buffered")
		return err
	}))
	assert.True(t, file.Exists())

	raw, err := UFS.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "buffered", string(raw))

	mtime, err := UFS.MTime(file)
	require.NoError(t, err)
	assert.False(t, mtime.IsZero())
}

func TestUFS_SafeCreate(t *testing.T) {
	file := UFS.File(filepath.Join(t.TempDir(), "out.sln"))
	require.NoError(t, os.WriteFile(file.String(), []byte("old"), 0o644))

	require.NoError(t, UFS.SafeCreate(file, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}))

	raw, err := UFS.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "new", string(raw))
	assert.False(t, file.ReplaceExt(".sln.tmp").Exists(), "temporary file is removed")
}

func TestUFS_SafeCreateKeepsOriginalOnError(t *testing.T) {
	file := UFS.File(filepath.Join(t.TempDir(), "out.sln"))
	require.NoError(t, os.WriteFile(file.String(), []byte("old"), 0o644))

	err := UFS.SafeCreate(file, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return io.ErrShortWrite
	})
	assert.ErrorIs(t, err, io.ErrShortWrite)

	raw, err := UFS.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "old", string(raw))
}

func TestFilenameSet(t *testing.T) {
	var file Filename
	require.NoError(t, file.Set("relative/x.json"))
	assert.True(t, filepath.IsAbs(file.String()))
	assert.Equal(t, "x.json", file.Basename)

	require.NoError(t, file.Set(""))
	assert.False(t, file.Valid())
}
