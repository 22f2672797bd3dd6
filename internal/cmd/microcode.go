// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/initforge/initforge/internal/cmdutil"
	"github.com/initforge/initforge/internal/config"
	"github.com/initforge/initforge/internal/driver"
	"github.com/spf13/cobra"
)

var microcodeCmd = &cobra.Command{
	Use:   "microcode",
	Short: "Build a standalone microcode cpio bundle",
	RunE:  runMicrocode,
}

func init() {
	microcodeCmd.Flags().StringVar(&flagOutput, "output", "", "output path, or - for stdout")
	_ = microcodeCmd.MarkFlagRequired("output")
}

func runMicrocode(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath(flagConfig, "microcode", flagSkipDefaultPaths)
	if err != nil {
		return err
	}

	cfg, err := config.LoadMicrocodeConfig(cfgPath)
	if err != nil {
		return err
	}

	out, err := driver.BuildMicrocode(cfg)
	if err != nil {
		return err
	}

	return cmdutil.WriteOutput(flagOutput, out)
}
