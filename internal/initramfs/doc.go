// SPDX-License-Identifier: GPL-3.0-or-later

// Package initramfs orchestrates the VFS, cpio serializer, ELF
// resolver, kernel-module installer and systemd unit resolver into the
// full initramfs assembly pipeline: seed canonical directories and
// symlinks, add the init/shutdown entrypoints, expand binaries and
// their library closures, mirror configured file trees and symlinks,
// install selected kernel modules, and pull in systemd units with their
// binaries and wants/ symlinks.
package initramfs
