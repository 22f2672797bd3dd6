// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadInitramfsConfig decodes the top-level initramfs configuration
// file at path.
func LoadInitramfsConfig(path string) (*InitramfsConfig, error) {
	var cfg InitramfsConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadMicrocodeConfig decodes the microcode configuration file at path.
func LoadMicrocodeConfig(path string) (*MicrocodeConfig, error) {
	var cfg MicrocodeConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadModuleConfig decodes a single module configuration file.
func LoadModuleConfig(path string) (*ModuleConfig, error) {
	var cfg ModuleConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadModuleDir decodes every *.yml/*.yaml file directly under dir into
// a ModuleConfig, keyed by each config's declared Name. Files are read
// in sorted filename order so configuration errors are reported
// deterministically.
func LoadModuleDir(dir string) (map[string]*ModuleConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := filepath.Ext(e.Name())
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	modules := make(map[string]*ModuleConfig, len(names))

	for _, name := range names {
		cfg, err := LoadModuleConfig(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", name, err)
		}

		modules[cfg.Name] = cfg
	}

	return modules, nil
}

func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}
