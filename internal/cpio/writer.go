// SPDX-License-Identifier: GPL-3.0-or-later

package cpio

import (
	"fmt"
	"io"
	"sort"

	"github.com/initforge/initforge/internal/vfs"
)

const (
	magic = "070701"

	// inoOffset is added to the zero-based position of each entry in
	// sorted order, keeping archive inode numbers well clear of the small
	// integers the kernel reserves for its own synthetic inodes.
	inoOffset = 1337

	trailerName = "TRAILER!!!"

	headerFixedSize = len(magic) + 13*8
)

// Writer serializes a [vfs.Archive] as a newc cpio stream.
type Writer struct {
	w io.Writer
}

// NewWriter returns a [Writer] that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteArchive writes every entry of archive to the underlying writer in
// path-sorted order, followed by the TRAILER!!! record. The root path "/"
// is dropped; it is implicit in the kernel's own cpio unpacking.
//
// The only failure mode is a downstream write error.
func (cw *Writer) WriteArchive(archive vfs.Archive) error {
	entries := make([]vfs.ArchiveEntry, 0, len(archive))

	for _, e := range archive {
		if e.Path == "/" {
			continue
		}

		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	for i, e := range entries {
		name := stripLeadingSlash(e.Path)

		if err := cw.writeEntry(uint32(i+inoOffset), name, e.Entry); err != nil { //nolint:gosec
			return fmt.Errorf("write %s: %w", e.Path, err)
		}
	}

	trailer := vfs.Entry{Metadata: vfs.Metadata{Mode: vfs.ModeDir}}

	if err := cw.writeEntry(uint32(len(entries)+inoOffset), trailerName, trailer); err != nil { //nolint:gosec
		return fmt.Errorf("write trailer: %w", err)
	}

	return nil
}

func stripLeadingSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}

	return p
}

func (cw *Writer) writeEntry(ino uint32, name string, e vfs.Entry) error {
	nameSize := len(name) + 1
	fileSize := len(e.Payload)

	hdr := header{
		ino:       ino,
		mode:      e.Metadata.Mode,
		uid:       uint32(e.Metadata.UID), //nolint:gosec
		gid:       uint32(e.Metadata.GID), //nolint:gosec
		nlink:     uint32(e.Metadata.NLink), //nolint:gosec
		mtime:     uint32(e.Metadata.Mtime), //nolint:gosec
		fileSize:  uint32(fileSize), //nolint:gosec
		devMajor:  e.Metadata.DevMajor,
		devMinor:  e.Metadata.DevMinor,
		rdevMajor: e.Metadata.RdevMajor,
		rdevMinor: e.Metadata.RdevMinor,
		nameSize:  uint32(nameSize), //nolint:gosec
	}

	if _, err := cw.w.Write(hdr.encode()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	nameBuf := make([]byte, 0, nameSize+3)
	nameBuf = append(nameBuf, name...)
	nameBuf = append(nameBuf, 0)
	nameBuf = append(nameBuf, padding(headerFixedSize+nameSize)...)

	if _, err := cw.w.Write(nameBuf); err != nil {
		return fmt.Errorf("write name: %w", err)
	}

	if fileSize == 0 {
		return nil
	}

	if _, err := cw.w.Write(e.Payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	if _, err := cw.w.Write(padding(fileSize)); err != nil {
		return fmt.Errorf("write payload padding: %w", err)
	}

	return nil
}

// padding returns the zero bytes needed to align length up to a 4-byte
// boundary: (4 - length % 4) % 4.
func padding(length int) []byte {
	n := (4 - length%4) % 4

	return make([]byte, n)
}
