// SPDX-License-Identifier: GPL-3.0-or-later

package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio"
)

// WriteOutput writes data to path, or to stdout if path is "-". Writes
// to a real path are atomic: the data lands at path only once it is
// fully and successfully written.
func WriteOutput(path string, data []byte) error {
	if path == "-" {
		return writeAll(os.Stdout, data)
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cmdutil: write %s: %w", path, err)
	}

	return nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)

	return err
}
