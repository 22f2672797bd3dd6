// SPDX-License-Identifier: GPL-3.0-or-later

package kmod

import (
	"errors"
	"fmt"
)

// ErrBadDirectory is returned when an explicitly supplied module tree
// root does not contain a kernel/ subdirectory.
var ErrBadDirectory = errors.New("kmod: not a module tree: missing kernel/ subdirectory")

// ErrTooSmallForMagic is returned when a module payload is shorter than
// the longest magic sequence recognized by format detection.
var ErrTooSmallForMagic = errors.New("kmod: module payload too small to classify")

// ErrUnknownMagic is returned when a module payload's leading bytes do
// not match any recognized compression or ELF magic.
var ErrUnknownMagic = errors.New("kmod: unrecognized module payload magic")

// ModuleNotFoundError reports that a module name has no entry in the
// context's module index and is not a known builtin.
type ModuleNotFoundError struct {
	Name string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("kmod: module not found: %s", e.Name)
}
