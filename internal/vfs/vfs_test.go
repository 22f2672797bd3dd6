// SPDX-License-Identifier: GPL-3.0-or-later

package vfs_test

import (
	"errors"
	"testing"

	"github.com/initforge/initforge/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := vfs.New()

	assert.True(t, v.ContainsDir("/"))
}

func TestVFS_CreateDir(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		v := vfs.New()

		require.NoError(t, v.CreateDir("/etc"))
		require.NoError(t, v.CreateDir("/etc"))

		assert.True(t, v.ContainsDir("/etc"))
	})

	t.Run("missing parent", func(t *testing.T) {
		v := vfs.New()

		err := v.CreateDir("/a/b")
		require.Error(t, err)
		assert.ErrorIs(t, err, vfs.ErrNoSuchFileOrDirectory)
	})

	t.Run("parent not a directory", func(t *testing.T) {
		v := vfs.New()
		require.NoError(t, v.CreateEntry("/file", vfs.NewFileEntry([]byte("x"))))

		err := v.CreateDir("/file/sub")
		require.Error(t, err)
		assert.ErrorIs(t, err, vfs.ErrNotADirectory)
	})

	t.Run("exists as file", func(t *testing.T) {
		v := vfs.New()
		require.NoError(t, v.CreateEntry("/file", vfs.NewFileEntry([]byte("x"))))

		err := v.CreateDir("/file")
		require.Error(t, err)
		assert.ErrorIs(t, err, vfs.ErrFileExists)
	})

	t.Run("over symlink is no-op", func(t *testing.T) {
		v := vfs.New()
		require.NoError(t, v.CreateEntry("/lnk", vfs.NewSymlinkEntry("target")))

		require.NoError(t, v.CreateDir("/lnk"))
		assert.True(t, v.Contains("/lnk"))

		e, ok := v.Get("/lnk")
		require.True(t, ok)
		assert.True(t, e.IsSymlink())
	})
}

func TestVFS_CreateDirAll(t *testing.T) {
	v := vfs.New()

	require.NoError(t, v.CreateDirAll("/a/b/c"))

	assert.True(t, v.ContainsDir("/a"))
	assert.True(t, v.ContainsDir("/a/b"))
	assert.True(t, v.ContainsDir("/a/b/c"))
}

func TestVFS_CreateEntry(t *testing.T) {
	t.Run("file twice fails", func(t *testing.T) {
		v := vfs.New()

		require.NoError(t, v.CreateEntry("/test", vfs.NewFileEntry([]byte("data"))))

		err := v.CreateEntry("/test", vfs.NewFileEntry([]byte("other")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, vfs.ErrFileExists))
	})

	t.Run("missing parent", func(t *testing.T) {
		v := vfs.New()

		err := v.CreateEntry("/a/test", vfs.NewFileEntry(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, vfs.ErrNoSuchFileOrDirectory)
	})

	t.Run("symlink overwrite is allowed", func(t *testing.T) {
		v := vfs.New()

		require.NoError(t, v.CreateEntry("/lnk", vfs.NewSymlinkEntry("a")))
		require.NoError(t, v.CreateEntry("/lnk", vfs.NewSymlinkEntry("b")))

		e, ok := v.Get("/lnk")
		require.True(t, ok)
		assert.Equal(t, "b", string(e.Payload))
	})
}

func TestVFS_Drain(t *testing.T) {
	v := vfs.New()
	require.NoError(t, v.CreateDir("/etc"))
	require.NoError(t, v.CreateEntry("/etc/passwd", vfs.NewFileEntry([]byte("root"))))

	archive := v.Drain()

	paths := make(map[string]bool)
	for _, e := range archive {
		paths[e.Path] = true
	}

	assert.True(t, paths["/"])
	assert.True(t, paths["/etc"])
	assert.True(t, paths["/etc/passwd"])
}

func TestVFS_IdempotenceOrderIndependence(t *testing.T) {
	// P1: only the first create_dir has effect, regardless of how many
	// times it is repeated, and in whichever order paths are created.
	a := vfs.New()
	require.NoError(t, a.CreateDir("/a"))
	require.NoError(t, a.CreateDir("/a/b"))
	require.NoError(t, a.CreateEntry("/a/file", vfs.NewFileEntry([]byte("x"))))

	b := vfs.New()
	require.NoError(t, b.CreateDirAll("/a/b"))
	require.NoError(t, b.CreateEntry("/a/file", vfs.NewFileEntry([]byte("x"))))
	require.NoError(t, b.CreateDir("/a"))

	archiveA := a.Drain()
	archiveB := b.Drain()

	assert.ElementsMatch(t, archiveA, archiveB)
}
