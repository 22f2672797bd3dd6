// SPDX-License-Identifier: GPL-3.0-or-later

package driver

import "fmt"

// UnknownModuleError reports that an initramfs configuration selected a
// module name with no matching file in the module directory.
type UnknownModuleError struct {
	Name string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("driver: unknown module: %s", e.Name)
}
