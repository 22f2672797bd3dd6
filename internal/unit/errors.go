// SPDX-License-Identifier: GPL-3.0-or-later

package unit

import "fmt"

// NotFoundError reports that a unit name could not be located on any
// unit search path.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unit: not found: %s", e.Name)
}
