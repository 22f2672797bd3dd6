// SPDX-License-Identifier: GPL-3.0-or-later

package pathsearch

import (
	"os"
	"path/filepath"
)

// Search returns the first joining of a candidate directory and name for
// which a host filesystem entry exists, in candidate order. It reports
// false if none of the candidates contain name.
func Search(name string, candidates []string) (string, bool) {
	for _, dir := range candidates {
		candidate := filepath.Join(dir, name)

		if _, err := os.Lstat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}
