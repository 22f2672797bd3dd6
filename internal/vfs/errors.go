// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"io/fs"
)

var (
	// ErrNoSuchFileOrDirectory is returned when an operation's parent path
	// does not exist.
	ErrNoSuchFileOrDirectory = fs.ErrNotExist

	// ErrNotADirectory is returned when an operation expects a path to be a
	// directory but it is not.
	ErrNotADirectory = errors.New("not a directory")

	// ErrFileExists is returned when an operation would overwrite an
	// existing regular file, or create a directory where a file already
	// exists.
	ErrFileExists = fs.ErrExist

	// ErrInvalidPath is returned for paths that cannot be interpreted as
	// absolute VFS paths.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError records an error and the operation and path that caused it.
type PathError = fs.PathError
