// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"path"
	"strings"
)

// ArchiveEntry pairs a path with its [Entry], as produced by [VFS.Drain].
type ArchiveEntry struct {
	Path  string
	Entry Entry
}

// Archive is an ordered-by-caller list of [ArchiveEntry] values. Drain does
// not itself impose an order; the cpio serializer does, at emit time.
type Archive []ArchiveEntry

// VFS is an in-memory mapping from absolute path to [Entry]. The zero value
// is not usable; create one with [New].
//
// VFS has a single owner: it is constructed, mutated by one builder, then
// frozen into an [Archive] with [VFS.Drain]. There is no shared mutation and
// no concurrency support.
type VFS struct {
	entries map[string]Entry
}

// New returns a [VFS] with only the root directory present.
func New() *VFS {
	v := &VFS{entries: make(map[string]Entry)}
	v.entries["/"] = NewDirEntry()

	return v
}

// clean normalizes p into an absolute, slash-separated path without a
// trailing slash (except for the root itself).
func clean(p string) string {
	return path.Clean("/" + p)
}

// Contains reports whether path is present in the VFS, regardless of kind.
func (v *VFS) Contains(p string) bool {
	_, ok := v.entries[clean(p)]

	return ok
}

// ContainsDir reports whether path is present and is a directory.
func (v *VFS) ContainsDir(p string) bool {
	e, ok := v.entries[clean(p)]

	return ok && e.IsDir()
}

// ContainsFile reports whether path is present and is a regular file.
func (v *VFS) ContainsFile(p string) bool {
	e, ok := v.entries[clean(p)]

	return ok && e.IsFile()
}

// Get returns the [Entry] at path, if present.
func (v *VFS) Get(p string) (Entry, bool) {
	e, ok := v.entries[clean(p)]

	return e, ok
}

// CreateDir creates a directory at path. It fails with
// [ErrNoSuchFileOrDirectory] if the parent does not exist, with
// [ErrNotADirectory] if the parent exists but is not a directory, and is a
// no-op if path already exists as a directory or symlink. Creating a
// directory over an existing file fails with [ErrFileExists].
func (v *VFS) CreateDir(p string) error {
	cp := clean(p)
	if cp == "/" {
		return nil
	}

	parEntry, ok := v.entries[path.Dir(cp)]
	if !ok {
		return &PathError{Op: "create_dir", Path: p, Err: ErrNoSuchFileOrDirectory}
	}

	if !parEntry.IsDir() {
		return &PathError{Op: "create_dir", Path: p, Err: ErrNotADirectory}
	}

	if existing, ok := v.entries[cp]; ok {
		if existing.IsDir() || existing.IsSymlink() {
			return nil
		}

		return &PathError{Op: "create_dir", Path: p, Err: ErrFileExists}
	}

	v.entries[cp] = NewDirEntry()

	return nil
}

// CreateDirAll creates every missing ancestor of path, including path
// itself, as a directory.
func (v *VFS) CreateDirAll(p string) error {
	cp := clean(p)
	if cp == "/" {
		return nil
	}

	segments := strings.Split(strings.TrimPrefix(cp, "/"), "/")

	cur := ""
	for _, seg := range segments {
		cur += "/" + seg

		if err := v.CreateDir(cur); err != nil {
			return err
		}
	}

	return nil
}

// CreateEntry inserts or overwrites the [Entry] at path. It fails with
// [ErrFileExists] if path is already present as a regular file.
// [ErrNoSuchFileOrDirectory]/[ErrNotADirectory] are returned the same way
// as for [VFS.CreateDir] when the parent is missing or not a directory.
func (v *VFS) CreateEntry(p string, e Entry) error {
	cp := clean(p)

	if cp == "/" {
		if !e.IsDir() {
			return &PathError{Op: "create_entry", Path: p, Err: ErrFileExists}
		}

		v.entries["/"] = e

		return nil
	}

	parEntry, ok := v.entries[path.Dir(cp)]
	if !ok {
		return &PathError{Op: "create_entry", Path: p, Err: ErrNoSuchFileOrDirectory}
	}

	if !parEntry.IsDir() {
		return &PathError{Op: "create_entry", Path: p, Err: ErrNotADirectory}
	}

	if existing, ok := v.entries[cp]; ok && existing.IsFile() {
		return &PathError{Op: "create_entry", Path: p, Err: ErrFileExists}
	}

	v.entries[cp] = e

	return nil
}

// Drain returns every entry in the VFS as an [Archive], in arbitrary order.
// The VFS remains usable afterwards; callers that want single-ownership
// freeze semantics should not mutate it further.
func (v *VFS) Drain() Archive {
	archive := make(Archive, 0, len(v.entries))

	for p, e := range v.entries {
		archive = append(archive, ArchiveEntry{Path: p, Entry: e})
	}

	return archive
}
