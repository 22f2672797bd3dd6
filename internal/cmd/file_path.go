// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
)

// ValidateFilePath checks that name exists and is a regular file.
func ValidateFilePath(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	return nil
}
