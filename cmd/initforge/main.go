// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/initforge/initforge/internal/cmd"
)

func main() {
	cmd.Execute()
}
