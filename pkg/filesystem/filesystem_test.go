package filesystem_test

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/types"
)

func exerciseFS(t *testing.T, fs types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "a", "b")
	require.NoError(t, fs.MkdirAll(dir, 0755))

	file := filepath.Join(dir, "one.txt")
	require.NoError(t, fs.WriteFile(file, []byte("hello"), 0644))

	data, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	f, err := fs.Open(file)
	require.NoError(t, err)
	streamed, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "hello", string(streamed))

	w, err := fs.Create(filepath.Join(dir, "two.txt"))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)
	require.NoError(t, fs.Chtimes(file, mtime, mtime))
	info, err := fs.Stat(file)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"one.txt", "two.txt"}, names)

	moved := filepath.Join(root, "a", "moved.txt")
	require.NoError(t, fs.Rename(file, moved))
	_, err = fs.Stat(file)
	assert.Error(t, err)
	_, err = fs.Lstat(moved)
	assert.NoError(t, err)

	_, err = fs.ReadFile(dir)
	assert.Error(t, err, "reading a directory fails")

	require.NoError(t, fs.Remove(moved))
	require.NoError(t, fs.RemoveAll(filepath.Join(root, "a")))
	_, err = fs.Stat(dir)
	assert.Error(t, err)
}

func TestOSFS(t *testing.T) {
	exerciseFS(t, filesystem.NewOS(), t.TempDir())
}

func TestMemoryFS(t *testing.T) {
	exerciseFS(t, filesystem.NewMemory(), "/mem")
}
