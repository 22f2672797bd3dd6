// SPDX-License-Identifier: GPL-3.0-or-later

package kmod

import (
	"fmt"
	"os"
	"path"

	"github.com/initforge/initforge/internal/vfs"
)

// Install resolves name and recursively installs it and every module
// named in its depends/pre_softdeps/post_softdeps closure into fs.
// Builtin modules and already-installed paths are skipped. Each module's
// own file is installed before its dependencies are visited, so the
// already-installed check absorbs duplicate visits and dependency cycles.
func (c *Context) Install(fs *vfs.VFS, name string) error {
	m, err := c.LookupByName(name)
	if err != nil {
		return err
	}

	return c.installModule(fs, m)
}

// InstallByPath installs the module at hostPath, bypassing the name
// index, along with its dependency closure.
func (c *Context) InstallByPath(fs *vfs.VFS, hostPath string) error {
	m, err := c.LookupByPath(hostPath)
	if err != nil {
		return err
	}

	return c.installModule(fs, m)
}

func (c *Context) installModule(fs *vfs.VFS, m Module) error {
	if m.Builtin() {
		return nil
	}

	if fs.ContainsFile(m.InstallPath) {
		return nil
	}

	if err := fs.CreateDirAll(path.Dir(m.InstallPath)); err != nil {
		return fmt.Errorf("kmod: create install directory for %s: %w", m.Name, err)
	}

	raw, err := os.ReadFile(m.HostPath)
	if err != nil {
		return fmt.Errorf("kmod: read %s: %w", m.HostPath, err)
	}

	payload, err := Decompress(raw)
	if err != nil {
		return fmt.Errorf("kmod: decompress %s: %w", m.HostPath, err)
	}

	if err := fs.CreateEntry(m.InstallPath, vfs.NewFileEntry(payload)); err != nil {
		return err
	}

	info, err := c.ReadInfo(m)
	if err != nil {
		return fmt.Errorf("kmod: read info for %s: %w", m.Name, err)
	}

	for _, depName := range depClosureOrder(info) {
		dep, err := c.LookupByName(depName)
		if err != nil {
			return err
		}

		if err := c.installModule(fs, dep); err != nil {
			return err
		}
	}

	return nil
}

func depClosureOrder(info Info) []string {
	all := make([]string, 0, len(info.Depends)+len(info.PreSoftdeps)+len(info.PostSoftdeps))
	all = append(all, info.Depends...)
	all = append(all, info.PreSoftdeps...)
	all = append(all, info.PostSoftdeps...)

	return all
}
