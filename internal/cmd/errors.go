// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
)

var (
	// ErrNoConfig is returned when neither --config nor a default
	// config path resolves to an existing file.
	ErrNoConfig = errors.New("no configuration file found")

	// ErrNotRegularFile is returned if a file should be read but is not
	// a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)
