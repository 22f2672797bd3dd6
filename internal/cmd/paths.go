// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/initforge/initforge/internal/config"
)

// defaultConfigPaths lists the host paths searched for a named
// configuration file when --config is not given and default paths are
// not skipped. The first existing path wins.
func defaultConfigPaths(name string) []string {
	return []string{
		"/etc/initforge/" + name + ".yaml",
		"/etc/initforge/" + name + ".yml",
	}
}

// defaultConfDirs lists the host directories searched for module
// configuration files when --confdir is not given and default paths
// are not skipped.
func defaultConfDirs() []string {
	return []string{
		"/etc/initforge/modules.d",
		"/usr/lib/initforge/modules.d",
	}
}

// resolveConfigPath picks explicit over defaults, returning the first
// path that exists.
func resolveConfigPath(explicit string, name string, skipDefaults bool) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if skipDefaults {
		return "", fmt.Errorf("%s: %w", name, ErrNoConfig)
	}

	for _, candidate := range defaultConfigPaths(name) {
		if ValidateFilePath(candidate) == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrNoConfig)
}

// resolveConfDirs picks explicit confdirs over defaults.
func resolveConfDirs(explicit []string, skipDefaults bool) []string {
	if len(explicit) > 0 {
		return explicit
	}

	if skipDefaults {
		return nil
	}

	return defaultConfDirs()
}

// loadModules decodes every module configuration file found across
// dirs, in order, with later directories overriding earlier ones on
// name collisions.
func loadModules(dirs []string) (map[string]*config.ModuleConfig, error) {
	modules := map[string]*config.ModuleConfig{}

	for _, dir := range dirs {
		found, err := config.LoadModuleDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load module dir %s: %w", dir, err)
		}

		for name, mod := range found {
			modules[name] = mod
		}
	}

	return modules, nil
}
