// SPDX-License-Identifier: GPL-3.0-or-later

// Package config decodes the three YAML configuration shapes the driver
// consumes: the top-level initramfs configuration, per-module
// configuration files from a module directory, and the microcode
// configuration. Fields that accept either a bare string or a small map
// (binaries, units, kernel modules) are decoded through custom
// yaml.Unmarshaler implementations rather than a generic interface{}
// decode, so malformed shapes fail with a precise error at load time.
package config
