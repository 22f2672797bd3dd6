// SPDX-License-Identifier: GPL-3.0-or-later

package microcode

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/initforge/initforge/internal/vfs"
)

const microcodeDir = "/kernel/x86/microcode"

// Builder assembles the microcode bundle VFS. Each vendor may be added
// at most once; a second call is a no-op.
type Builder struct {
	fs       *vfs.VFS
	addedAMD bool
	addedIntel bool
}

// New returns a Builder with the microcode directory tree pre-created.
func New() *Builder {
	fs := vfs.New()
	_ = fs.CreateDirAll(microcodeDir)

	return &Builder{fs: fs}
}

// AddAMD concatenates every regular file under dir, in sorted filename
// order, into /kernel/x86/microcode/AuthenticAMD.bin. A second call is
// a no-op.
func (b *Builder) AddAMD(dir string) error {
	if b.addedAMD {
		return nil
	}

	b.addedAMD = true

	return b.addVendor(dir, "AuthenticAMD.bin")
}

// AddIntel concatenates every regular file under dir, in sorted
// filename order, into /kernel/x86/microcode/GenuineIntel.bin. A second
// call is a no-op.
func (b *Builder) AddIntel(dir string) error {
	if b.addedIntel {
		return nil
	}

	b.addedIntel = true

	return b.addVendor(dir, "GenuineIntel.bin")
}

// Build drains the accumulated VFS into an Archive ready for
// serialization.
func (b *Builder) Build() vfs.Archive {
	return b.fs.Drain()
}

func (b *Builder) addVendor(dir, filename string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}

	// The host directory iterator's order is not guaranteed stable
	// across filesystems; sorting trades that nondeterminism for
	// reproducible bundles.
	sort.Strings(names)

	var blob []byte

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}

		blob = append(blob, data...)
	}

	return b.fs.CreateEntry(filepath.Join(microcodeDir, filename), vfs.NewFileEntry(blob))
}
