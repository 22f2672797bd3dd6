// SPDX-License-Identifier: GPL-3.0-or-later

package kmod_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildModuleELF assembles a minimal 64-bit little-endian ELF object
// carrying a single .modinfo section whose content is the given
// NUL-separated "key=value" fields.
func buildModuleELF(t *testing.T, modinfo []byte) []byte {
	t.Helper()

	const ehdrSize = 64
	const shdrSize = 64

	modinfoOff := uint64(ehdrSize)
	shstrtab := []byte("\x00.modinfo\x00.shstrtab\x00")
	shstrtabOff := modinfoOff + uint64(len(modinfo))
	shoff := shstrtabOff + uint64(len(shstrtab))

	var buf bytes.Buffer

	ident := []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf.Write(ident)

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, struct {
		Type, Machine              uint16
		Version                    uint32
		Entry, Phoff, Shoff        uint64
		Flags                      uint32
		Ehsize, Phentsize, Phnum   uint16
		Shentsize, Shnum, Shstrndx uint16
	}{
		Type: 1, Machine: 0x3e, Version: 1,
		Entry: 0, Phoff: 0, Shoff: shoff,
		Flags:     0,
		Ehsize:    ehdrSize,
		Phentsize: 0, Phnum: 0,
		Shentsize: shdrSize, Shnum: 3, Shstrndx: 2,
	}))

	buf.Write(modinfo)
	buf.Write(shstrtab)

	type shdr struct {
		Name, Type                    uint32
		Flags, Addr, Offset, Size     uint64
		Link, Info                    uint32
		Addralign, Entsize            uint64
	}

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, shdr{})) // SHT_NULL

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, shdr{
		Name: 1, Type: 1, // PROGBITS
		Offset: modinfoOff, Size: uint64(len(modinfo)),
		Addralign: 1,
	}))

	require.NoError(t, binary.Write(&buf, binary.LittleEndian, shdr{
		Name: 10, Type: 3, // STRTAB
		Offset: shstrtabOff, Size: uint64(len(shstrtab)),
		Addralign: 1,
	}))

	return buf.Bytes()
}
