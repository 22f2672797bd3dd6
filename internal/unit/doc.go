// SPDX-License-Identifier: GPL-3.0-or-later

// Package unit locates and parses systemd unit files, extracting their
// Requires= dependencies and ExecStart= binaries, and computes the
// *.wants/ symlink install path appropriate to the unit's file
// extension.
package unit
