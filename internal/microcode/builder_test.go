// SPDX-License-Identifier: GPL-3.0-or-later

package microcode_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/initforge/initforge/internal/microcode"
	"github.com/initforge/initforge/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AddAMD_ConcatenatesInSortedOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte("BB"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte("AA"), 0o644))

	b := microcode.New()
	require.NoError(t, b.AddAMD(dir))

	archive := b.Build()

	var entry vfs.Entry

	for _, e := range archive {
		if e.Path == "/kernel/x86/microcode/AuthenticAMD.bin" {
			entry = e.Entry
		}
	}

	assert.Equal(t, "AABB", string(entry.Payload))
}

func TestBuilder_AddAMD_SecondCallIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte("AA"), 0o644))

	b := microcode.New()
	require.NoError(t, b.AddAMD(dir))
	require.NoError(t, b.AddAMD(dir))

	var count int

	for _, e := range b.Build() {
		if e.Path == "/kernel/x86/microcode/AuthenticAMD.bin" {
			count++
		}
	}

	assert.Equal(t, 1, count)
}

func TestBuilder_BothVendors(t *testing.T) {
	amdDir := t.TempDir()
	intelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(amdDir, "a.bin"), []byte("amd"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(intelDir, "a.bin"), []byte("intel"), 0o644))

	b := microcode.New()
	require.NoError(t, b.AddAMD(amdDir))
	require.NoError(t, b.AddIntel(intelDir))

	paths := map[string]bool{}
	for _, e := range b.Build() {
		paths[e.Path] = true
	}

	assert.True(t, paths["/kernel/x86/microcode/AuthenticAMD.bin"])
	assert.True(t, paths["/kernel/x86/microcode/GenuineIntel.bin"])
}
