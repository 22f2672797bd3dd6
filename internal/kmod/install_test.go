// SPDX-License-Identifier: GPL-3.0-or-later

package kmod_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/initforge/initforge/internal/kmod"
	"github.com/initforge/initforge/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modinfoFields(fields ...string) []byte {
	var buf bytes.Buffer

	for _, f := range fields {
		buf.WriteString(f)
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

// newTestTree builds a module tree under t.TempDir() with:
//   kernel/net/foo.ko      depends on bar, softdep pre: baz
//   kernel/net/bar.ko      no dependencies
//   kernel/net/baz.ko      no dependencies
// and registers "ext4" as a builtin module.
func newTestTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	netDir := filepath.Join(root, "kernel", "net")
	require.NoError(t, os.MkdirAll(netDir, 0o755))

	foo := buildModuleELF(t, modinfoFields("depends=bar", "softdep=pre: baz"))
	require.NoError(t, os.WriteFile(filepath.Join(netDir, "foo.ko"), foo, 0o644))

	bar := buildModuleELF(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(netDir, "bar.ko"), bar, 0o644))

	baz := buildModuleELF(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(netDir, "baz.ko"), baz, 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(root, "modules.builtin"), []byte("kernel/fs/ext4.ko\n"), 0o644))

	return root
}

// newCyclicTestTree builds a module tree under t.TempDir() with:
//
//	kernel/net/cyca.ko      depends on cycb
//	kernel/net/cycb.ko      depends on cyca
func newCyclicTestTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	netDir := filepath.Join(root, "kernel", "net")
	require.NoError(t, os.MkdirAll(netDir, 0o755))

	cyca := buildModuleELF(t, modinfoFields("depends=cycb"))
	require.NoError(t, os.WriteFile(filepath.Join(netDir, "cyca.ko"), cyca, 0o644))

	cycb := buildModuleELF(t, modinfoFields("depends=cyca"))
	require.NoError(t, os.WriteFile(filepath.Join(netDir, "cycb.ko"), cycb, 0o644))

	return root
}

func TestContext_Install_CyclicDependencyTerminates(t *testing.T) {
	ctx, err := kmod.New("6.1.0-test", newCyclicTestTree(t))
	require.NoError(t, err)

	fs := vfs.New()
	require.NoError(t, ctx.Install(fs, "cyca"))

	assert.True(t, fs.ContainsFile("/usr/lib/modules/6.1.0-test/kernel/net/cyca.ko"))
	assert.True(t, fs.ContainsFile("/usr/lib/modules/6.1.0-test/kernel/net/cycb.ko"))
}

func TestContext_LookupByName(t *testing.T) {
	ctx, err := kmod.New("6.1.0-test", newTestTree(t))
	require.NoError(t, err)
	assert.Equal(t, "6.1.0-test", ctx.Release())

	m, err := ctx.LookupByName("foo")
	require.NoError(t, err)
	assert.False(t, m.Builtin())
	assert.Equal(t, "/usr/lib/modules/6.1.0-test/kernel/net/foo.ko", m.InstallPath)

	builtin, err := ctx.LookupByName("ext4")
	require.NoError(t, err)
	assert.True(t, builtin.Builtin())

	_, err = ctx.LookupByName("nonexistent")
	var notFound *kmod.ModuleNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestContext_BadDirectory(t *testing.T) {
	_, err := kmod.New("6.1.0-test", t.TempDir())
	assert.ErrorIs(t, err, kmod.ErrBadDirectory)
}

func TestContext_ReadInfo(t *testing.T) {
	ctx, err := kmod.New("6.1.0-test", newTestTree(t))
	require.NoError(t, err)

	foo, err := ctx.LookupByName("foo")
	require.NoError(t, err)

	info, err := ctx.ReadInfo(foo)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar"}, info.Depends)
	assert.Equal(t, []string{"baz"}, info.PreSoftdeps)
	assert.Empty(t, info.PostSoftdeps)
}

func TestContext_Install(t *testing.T) {
	ctx, err := kmod.New("6.1.0-test", newTestTree(t))
	require.NoError(t, err)

	fs := vfs.New()
	require.NoError(t, ctx.Install(fs, "foo"))

	assert.True(t, fs.ContainsFile("/usr/lib/modules/6.1.0-test/kernel/net/foo.ko"))
	assert.True(t, fs.ContainsFile("/usr/lib/modules/6.1.0-test/kernel/net/bar.ko"))
	assert.True(t, fs.ContainsFile("/usr/lib/modules/6.1.0-test/kernel/net/baz.ko"))
}

func TestContext_Install_BuiltinSkipsInstall(t *testing.T) {
	ctx, err := kmod.New("6.1.0-test", newTestTree(t))
	require.NoError(t, err)

	fs := vfs.New()
	require.NoError(t, ctx.Install(fs, "ext4"))

	assert.Equal(t, vfs.Archive{{Path: "/", Entry: vfs.NewDirEntry()}}, fs.Drain())
}
