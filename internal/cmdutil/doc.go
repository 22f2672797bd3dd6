// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmdutil holds ambient concerns shared by the driver CLI:
// logging setup and atomic output-file writing. None of it is part of
// the core assembly engine.
package cmdutil
