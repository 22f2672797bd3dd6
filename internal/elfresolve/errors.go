// SPDX-License-Identifier: GPL-3.0-or-later

package elfresolve

import (
	"errors"
	"fmt"
)

// ErrNot64BitElf is returned when a file lacks the ELF magic or does not
// declare itself as a 64-bit, little- or big-endian ELF object. Only
// 64-bit targets are supported; this module never runs on 32-bit systems.
var ErrNot64BitElf = errors.New("not a 64-bit ELF file")

// ErrNoDynamicSegment is returned when a 64-bit ELF file has no
// PT_DYNAMIC program header, i.e. it is statically linked and carries no
// DT_NEEDED entries at all.
var ErrNoDynamicSegment = errors.New("no PT_DYNAMIC segment")

// LibraryNotFoundError reports that a DT_NEEDED entry could not be
// located on any of the library search paths.
type LibraryNotFoundError struct {
	Name string
}

func (e *LibraryNotFoundError) Error() string {
	return fmt.Sprintf("elfresolve: library not found: %s", e.Name)
}
