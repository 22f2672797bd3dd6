// SPDX-License-Identifier: GPL-3.0-or-later

package cmdutil

import (
	"io"
	"log"
	"log/slog"
)

// SetupLogging configures the standard logger and slog's default level
// for the driver CLI. Debug widens the level to include Debug records.
func SetupLogging(w io.Writer, debug bool) {
	log.SetOutput(w)
	log.SetFlags(log.Lmicroseconds)
	log.SetPrefix("INITFORGE: ")

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	slog.SetLogLoggerLevel(level)
}
