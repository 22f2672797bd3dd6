// SPDX-License-Identifier: GPL-3.0-or-later

package elfresolve

import (
	"github.com/initforge/initforge/internal/pathsearch"
)

// LibrarySearchPaths is the ordered list of directories searched for a
// shared library named by a DT_NEEDED entry.
var LibrarySearchPaths = []string{
	"/usr/lib/",
	"/usr/lib64/",
	"/usr/lib/systemd/",
	"/lib/",
	"/lib64",
}

// BinarySearchPaths is the ordered list of directories searched for a
// binary or generator named by a systemd unit's ExecStart= or by a
// bare command-line argument.
var BinarySearchPaths = []string{
	"/usr/bin/",
	"/usr/sbin/",
	"/usr/local/bin/",
	"/usr/local/sbin/",
	"/usr/lib/systemd/",
	"/usr/lib/systemd/system-generators/",
	"/bin/",
	"/sbin/",
}

// FindLibrary locates name on LibrarySearchPaths.
func FindLibrary(name string) (string, bool) {
	return pathsearch.Search(name, LibrarySearchPaths)
}

// FindBinary locates name on BinarySearchPaths.
func FindBinary(name string) (string, bool) {
	return pathsearch.Search(name, BinarySearchPaths)
}
