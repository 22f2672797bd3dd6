// SPDX-License-Identifier: GPL-3.0-or-later

// Package elfresolve parses 64-bit ELF files to extract their DT_NEEDED
// shared-library dependencies and locates binaries and libraries on the
// well-known search paths.
//
// Unlike a system ldd, this resolver never executes the target binary or
// its interpreter: it walks PT_DYNAMIC program headers and the dynamic
// string table directly, so it is safe to run against untrusted files and
// never needs a running dynamic linker for the target's architecture.
package elfresolve
