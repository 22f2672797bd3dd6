// SPDX-License-Identifier: GPL-3.0-or-later

// Package vfs implements the in-memory virtual filesystem that the
// initramfs and microcode builders populate before handing it to the cpio
// serializer.
//
// A [VFS] is a mapping from absolute path to [Entry]. It enforces a small
// set of invariants (see [VFS.CreateDir], [VFS.CreateEntry]) that make
// directory and symlink creation idempotent while regular file creation is
// not, mirroring how a real filesystem tree is built up incrementally from
// independent, possibly overlapping, sources.
package vfs
