// SPDX-License-Identifier: GPL-3.0-or-later

// Package microcode builds the early-init cpio tree holding CPU
// microcode blobs at the paths the kernel probes before userspace
// starts: /kernel/x86/microcode/{AuthenticAMD,GenuineIntel}.bin.
package microcode
