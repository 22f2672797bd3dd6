// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the initforge CLI command tree: flag handling,
// configuration path resolution, and the two build subcommands, wired
// to internal/driver.
package cmd
