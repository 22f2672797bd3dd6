// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

// Canonical modes. Entry classification is by exact mode equality, not by
// file-type bits: a design simplification that keeps the VFS from having to
// model special files (devices, FIFOs, sockets) it never needs to emit.
const (
	ModeDir     uint32 = 0o040755
	ModeFile    uint32 = 0o100644
	ModeSymlink uint32 = 0o120000
)

// Metadata carries the cpio header fields for an [Entry]. Zero value fields
// are the correct default for every field the assembler does not otherwise
// populate.
type Metadata struct {
	Mode      uint32
	UID       uint64
	GID       uint64
	NLink     uint64
	Mtime     uint64
	DevMajor  uint32
	DevMinor  uint32
	RdevMajor uint32
	RdevMinor uint32
}

// splitRdev decodes a Linux-encoded rdev value into its major/minor parts.
//
//	major(d) = ((d >> 32) & 0xFFFFF000) | ((d >> 8) & 0x00000FFF)
//	minor(d) = ((d >> 12) & 0xFFFFFF00) | (d & 0x000000FF)
func splitRdev(rdev uint64) (major, minor uint32) {
	major = uint32(((rdev >> 32) & 0xFFFFF000) | ((rdev >> 8) & 0x00000FFF))
	minor = uint32(((rdev >> 12) & 0xFFFFFF00) | (rdev & 0x000000FF))

	return major, minor
}
