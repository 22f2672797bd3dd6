// SPDX-License-Identifier: GPL-3.0-or-later

// Package kmod resolves kernel module names against a module tree rooted
// at /usr/lib/modules/<release>, reads each module's embedded .modinfo
// section to discover its dependencies and soft dependencies, and
// installs the transitive closure of a requested module into a VFS,
// decompressing each module's payload as needed. It never shells out to
// modinfo or depmod.
package kmod
