// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// InitramfsConfig is the top-level configuration driving the initramfs
// builder.
type InitramfsConfig struct {
	Init     string   `yaml:"init"`
	Shutdown string   `yaml:"shutdown,omitempty"`
	Settings Settings `yaml:"settings,omitempty"`
	Modules  []string `yaml:"modules"`
}

// Settings holds builder-wide overrides.
type Settings struct {
	KernelModulePath string `yaml:"kernel_module_path,omitempty"`
}

// ModuleConfig is one reusable unit of initramfs content: a named
// collection of binaries, file trees, symlinks, kernel modules and
// systemd units to add.
type ModuleConfig struct {
	Name          string           `yaml:"name"`
	Binaries      []NamedRef       `yaml:"binaries,omitempty"`
	Files         []FileTree       `yaml:"files,omitempty"`
	Symlinks      []Symlink        `yaml:"symlinks,omitempty"`
	KernelModules []KernelModuleRef `yaml:"kernel_modules,omitempty"`
	Units         []NamedRef       `yaml:"units,omitempty"`
}

// MicrocodeConfig names the host directories holding AMD and Intel
// microcode blobs.
type MicrocodeConfig struct {
	AMDUcode   string `yaml:"amd_ucode,omitempty"`
	IntelUcode string `yaml:"intel_ucode,omitempty"`
}

// FileTree copies one or more source paths into destination, mirroring
// directories recursively.
type FileTree struct {
	Sources     []string `yaml:"sources"`
	Destination string   `yaml:"destination"`
}

// Symlink describes a guarded symlink to add at Path pointing at
// Target.
type Symlink struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
}

// NamedRef is a binary or unit reference: either a bare name/path
// string, or a {name: ...} / {path: ...} map. Both binaries and units
// resolve Path directly when set, bypassing their respective search
// paths; otherwise Name is searched on the binary search paths or the
// unit search paths, as appropriate.
type NamedRef struct {
	Name string
	Path string
}

// UnmarshalYAML accepts either a scalar string (treated as Name) or a
// map with a "name" key, a "path" key, or both.
func (r *NamedRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Name = value.Value

		return nil
	}

	var asMap struct {
		Name string `yaml:"name"`
		Path string `yaml:"path"`
	}

	if err := value.Decode(&asMap); err != nil {
		return fmt.Errorf("config: binaries/units entry must be a string or {name|path: ...}: %w", err)
	}

	if asMap.Name == "" && asMap.Path == "" {
		return fmt.Errorf("config: binaries/units map entry needs a name or path")
	}

	r.Name = asMap.Name
	r.Path = asMap.Path

	return nil
}

// KernelModuleRef is a kernel module reference: either a bare module
// name string, or a {path: ...} map naming an on-disk .ko file
// directly.
type KernelModuleRef struct {
	Name string
	Path string
}

// UnmarshalYAML accepts either a scalar string (a module name) or a
// single-key {path: ...} map.
func (r *KernelModuleRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Name = value.Value

		return nil
	}

	var asMap struct {
		Path string `yaml:"path"`
	}

	if err := value.Decode(&asMap); err != nil {
		return fmt.Errorf("config: kernel_modules entry must be a string or {path: ...}: %w", err)
	}

	if asMap.Path == "" {
		return fmt.Errorf("config: kernel_modules map entry needs a path")
	}

	r.Path = asMap.Path

	return nil
}
