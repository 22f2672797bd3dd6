// SPDX-License-Identifier: GPL-3.0-or-later

package elfresolve

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
)

// elfHeader64 mirrors the fixed-size portion of an Elf64_Ehdr that follows
// the 16-byte e_ident block.
type elfHeader64 struct {
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// programHeader64 mirrors an Elf64_Phdr entry.
type programHeader64 struct {
	Type   uint32
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// dynEntry64 mirrors an Elf64_Dyn entry: a signed tag followed by a
// union of value-or-pointer, both 8 bytes wide.
type dynEntry64 struct {
	Tag int64
	Val uint64
}

const (
	eiClass = 4
	eiData  = 5

	elfClass64 = 2

	elfDataLSB = 1
	elfDataMSB = 2

	identSize = 16

	phdrSize64 = 56
	dynSize64  = 16
)

// NeededLibraries reads image, a complete ELF file loaded into memory,
// and returns the DT_NEEDED shared-library names it declares, in the
// order they appear in the dynamic section. It never shells out to ldd
// or any dynamic linker: dependencies are read straight out of the
// PT_DYNAMIC segment and its string table.
func NeededLibraries(image []byte) ([]string, error) {
	// e_ident plus the 48-byte remainder of an Elf64_Ehdr.
	if len(image) < identSize+48 {
		return nil, ErrNot64BitElf
	}

	if !bytes.Equal(image[:4], []byte{0x7f, 'E', 'L', 'F'}) {
		return nil, ErrNot64BitElf
	}

	if image[eiClass] != elfClass64 {
		return nil, ErrNot64BitElf
	}

	var order binary.ByteOrder

	switch image[eiData] {
	case elfDataLSB:
		order = binary.LittleEndian
	case elfDataMSB:
		order = binary.BigEndian
	default:
		return nil, ErrNot64BitElf
	}

	var hdr elfHeader64
	if err := binary.Read(bytes.NewReader(image[identSize:]), order, &hdr); err != nil {
		return nil, fmt.Errorf("elfresolve: read ELF header: %w", err)
	}

	phdrs, err := readProgramHeaders(image, order, hdr)
	if err != nil {
		return nil, err
	}

	var dynPhdr *programHeader64

	for i := range phdrs {
		if elf.ProgType(phdrs[i].Type) == elf.PT_DYNAMIC {
			dynPhdr = &phdrs[i]
			break
		}
	}

	if dynPhdr == nil {
		return nil, ErrNoDynamicSegment
	}

	entries, err := readDynEntries(image, order, *dynPhdr)
	if err != nil {
		return nil, err
	}

	var (
		strtabVaddr uint64
		strtabSize  uint64
		neededOffs  []uint64
		haveStrtab  bool
	)

	for _, d := range entries {
		switch elf.DynTag(d.Tag) {
		case elf.DT_NEEDED:
			neededOffs = append(neededOffs, d.Val)
		case elf.DT_STRTAB:
			strtabVaddr = d.Val
			haveStrtab = true
		case elf.DT_STRSZ:
			strtabSize = d.Val
		case elf.DT_NULL:
			// terminator; readDynEntries already stops here.
		}
	}

	if len(neededOffs) == 0 {
		return nil, nil
	}

	if !haveStrtab {
		return nil, fmt.Errorf("elfresolve: dynamic section has DT_NEEDED but no DT_STRTAB")
	}

	strtab, err := sliceByVaddr(image, phdrs, strtabVaddr, strtabSize)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(neededOffs))
	for _, off := range neededOffs {
		name, err := cString(strtab, off)
		if err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, nil
}

func readProgramHeaders(image []byte, order binary.ByteOrder, hdr elfHeader64) ([]programHeader64, error) {
	phdrs := make([]programHeader64, 0, hdr.Phnum)

	for i := uint16(0); i < hdr.Phnum; i++ {
		start := hdr.Phoff + uint64(i)*uint64(phdrSize64)
		end := start + phdrSize64

		if end > uint64(len(image)) {
			return nil, fmt.Errorf("elfresolve: program header %d out of bounds", i)
		}

		var ph programHeader64
		if err := binary.Read(bytes.NewReader(image[start:end]), order, &ph); err != nil {
			return nil, fmt.Errorf("elfresolve: read program header %d: %w", i, err)
		}

		phdrs = append(phdrs, ph)
	}

	return phdrs, nil
}

// readDynEntries walks the PT_DYNAMIC segment's file data, stopping at
// DT_NULL or the end of the segment, whichever comes first.
func readDynEntries(image []byte, order binary.ByteOrder, dyn programHeader64) ([]dynEntry64, error) {
	if dyn.Offset+dyn.Filesz > uint64(len(image)) {
		return nil, fmt.Errorf("elfresolve: PT_DYNAMIC segment out of bounds")
	}

	var entries []dynEntry64

	count := dyn.Filesz / dynSize64
	for i := uint64(0); i < count; i++ {
		start := dyn.Offset + i*dynSize64
		end := start + dynSize64

		var e dynEntry64
		if err := binary.Read(bytes.NewReader(image[start:end]), order, &e); err != nil {
			return nil, fmt.Errorf("elfresolve: read dynamic entry %d: %w", i, err)
		}

		if elf.DynTag(e.Tag) == elf.DT_NULL {
			break
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// sliceByVaddr finds the first program header whose virtual address
// range contains vaddr and returns the corresponding file-offset slice
// of length size.
func sliceByVaddr(image []byte, phdrs []programHeader64, vaddr, size uint64) ([]byte, error) {
	for _, ph := range phdrs {
		if vaddr < ph.Vaddr || vaddr >= ph.Vaddr+ph.Filesz {
			continue
		}

		fileOff := ph.Offset + (vaddr - ph.Vaddr)
		if fileOff+size > uint64(len(image)) {
			return nil, fmt.Errorf("elfresolve: string table out of bounds")
		}

		return image[fileOff : fileOff+size], nil
	}

	return nil, fmt.Errorf("elfresolve: no segment maps vaddr %#x", vaddr)
}

// cString reads a NUL-terminated string from tab starting at off.
func cString(tab []byte, off uint64) (string, error) {
	if off >= uint64(len(tab)) {
		return "", fmt.Errorf("elfresolve: string offset %d out of bounds", off)
	}

	end := bytes.IndexByte(tab[off:], 0)
	if end < 0 {
		return "", fmt.Errorf("elfresolve: unterminated string at offset %d", off)
	}

	return string(tab[off : off+uint64(end)]), nil
}
