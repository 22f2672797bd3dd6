// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// Entry is a single VFS node: a directory, a regular file with its byte
// payload, or a symbolic link with its target bytes as payload.
type Entry struct {
	Metadata Metadata
	Payload  []byte
}

// NewDirEntry returns a directory [Entry] with the canonical directory
// mode.
func NewDirEntry() Entry {
	return Entry{Metadata: Metadata{Mode: ModeDir}}
}

// NewFileEntry returns a regular file [Entry] carrying the given payload
// and the canonical file mode.
func NewFileEntry(payload []byte) Entry {
	return Entry{
		Metadata: Metadata{Mode: ModeFile},
		Payload:  payload,
	}
}

// NewSymlinkEntry returns a symlink [Entry] pointing at target.
func NewSymlinkEntry(target string) Entry {
	return Entry{
		Metadata: Metadata{Mode: ModeSymlink},
		Payload:  []byte(target),
	}
}

// IsDir reports whether e is a directory entry.
func (e Entry) IsDir() bool { return e.Metadata.Mode == ModeDir }

// IsFile reports whether e is a regular file entry.
func (e Entry) IsFile() bool { return e.Metadata.Mode == ModeFile }

// IsSymlink reports whether e is a symlink entry.
func (e Entry) IsSymlink() bool { return e.Metadata.Mode == ModeSymlink }

// EntryFromHost reads a regular file or symlink from the host filesystem in
// one pass and returns the corresponding [Entry]. Mode, mtime and
// rdev-derived device numbers are copied verbatim from the host; directory
// nodes built this way carry no payload. Callers building directory trees
// should prefer [VFS.CreateDir]/[VFS.CreateDirAll] over inserting a
// host-derived directory [Entry] directly, so that the VFS's own directory
// invariant (exact-mode equality) keeps holding for traversal.
func EntryFromHost(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("stat: %w", err)
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Entry{}, fmt.Errorf("stat: %w", fs.ErrInvalid)
	}

	meta := Metadata{
		Mode:  stat.Mode,
		UID:   uint64(stat.Uid),
		GID:   uint64(stat.Gid),
		NLink: uint64(stat.Nlink),
		Mtime: uint64(stat.Mtim.Sec), //nolint:unconvert
	}
	meta.RdevMajor, meta.RdevMinor = splitRdev(uint64(stat.Rdev)) //nolint:unconvert

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return Entry{}, fmt.Errorf("readlink: %w", err)
		}

		return Entry{Metadata: meta, Payload: []byte(target)}, nil
	case info.IsDir():
		return Entry{Metadata: meta}, nil
	case info.Mode().IsRegular():
		payload, err := os.ReadFile(path)
		if err != nil {
			return Entry{}, fmt.Errorf("read: %w", err)
		}

		return Entry{Metadata: meta, Payload: payload}, nil
	default:
		return Entry{}, fmt.Errorf("%w: not a regular file, directory or symlink", ErrInvalidPath)
	}
}
