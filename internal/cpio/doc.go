// SPDX-License-Identifier: GPL-3.0-or-later

// Package cpio serializes a [vfs.Archive] into the "newc" cpio format the
// Linux kernel expects for an initramfs or microcode prefix.
//
// Output is byte-exact for a given archive: entries are sorted by path
// before emission and inode numbers are assigned deterministically, so two
// archives built from the same set of entries, regardless of insertion
// order, serialize identically.
package cpio
