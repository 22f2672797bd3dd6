// SPDX-License-Identifier: GPL-3.0-or-later

package kmod

import (
	"os"
	"path/filepath"
	"strings"
)

// Module is a handle to a kernel module: either installable from a host
// file, or builtin (compiled into the kernel image, carrying no payload
// and no further dependency chain to expand).
type Module struct {
	Name        string
	HostPath    string // empty for builtin modules
	InstallPath string // empty for builtin modules
}

// Builtin reports whether m is compiled into the kernel image.
func (m Module) Builtin() bool { return m.HostPath == "" }

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSuffix(name, ".ko"), "-", "_")
}

// LookupByName resolves a module by its short name (dashes and
// underscores are treated as equivalent, matching on-disk naming
// inconsistencies between aliases and file names).
func (c *Context) LookupByName(name string) (Module, error) {
	norm := normalizeName(name)

	if c.builtin[norm] {
		return Module{Name: norm}, nil
	}

	rel, ok := c.index[norm]
	if !ok {
		return Module{}, &ModuleNotFoundError{Name: name}
	}

	return c.moduleFromRelPath(norm, rel), nil
}

// LookupByPath resolves a module directly from a host path, bypassing
// the name index.
func (c *Context) LookupByPath(hostPath string) (Module, error) {
	rel, err := filepath.Rel(c.root, hostPath)
	if err != nil {
		rel = hostPath
	}

	name := moduleNameFromFile(rel)

	return c.moduleFromRelPath(name, rel), nil
}

func (c *Context) moduleFromRelPath(name, rel string) Module {
	dir := filepath.Dir(rel)
	install := filepath.Join("/usr/lib/modules", c.release, dir, name+".ko")

	return Module{
		Name:        name,
		HostPath:    filepath.Join(c.root, rel),
		InstallPath: install,
	}
}

// ReadInfo loads m's embedded module info. Builtin modules have no
// .modinfo section and always yield a zero-value Info.
func (c *Context) ReadInfo(m Module) (Info, error) {
	if m.Builtin() {
		return Info{}, nil
	}

	raw, err := os.ReadFile(m.HostPath)
	if err != nil {
		return Info{}, err
	}

	elfPayload, err := Decompress(raw)
	if err != nil {
		return Info{}, err
	}

	return parseModinfo(elfPayload)
}
