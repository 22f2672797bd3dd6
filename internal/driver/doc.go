// SPDX-License-Identifier: GPL-3.0-or-later

// Package driver wires the decoded configuration objects to the
// initramfs and microcode builders, then to the output codec, producing
// the final output stream: an optional uncompressed microcode cpio
// prefix followed by the compressed root archive.
package driver
