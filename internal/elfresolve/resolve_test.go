// SPDX-License-Identifier: GPL-3.0-or-later

package elfresolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/initforge/initforge/internal/elfresolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libfoo.so.1"), []byte{}, 0o644))

	orig := elfresolve.LibrarySearchPaths
	elfresolve.LibrarySearchPaths = []string{dir}
	t.Cleanup(func() { elfresolve.LibrarySearchPaths = orig })

	got, ok := elfresolve.FindLibrary("libfoo.so.1")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "libfoo.so.1"), got)

	_, ok = elfresolve.FindLibrary("libmissing.so")
	assert.False(t, ok)
}

func TestFindBinary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ls"), []byte{}, 0o755))

	orig := elfresolve.BinarySearchPaths
	elfresolve.BinarySearchPaths = []string{dir}
	t.Cleanup(func() { elfresolve.BinarySearchPaths = orig })

	got, ok := elfresolve.FindBinary("ls")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "ls"), got)
}
