// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"

	"github.com/initforge/initforge/internal/cmdutil"
	"github.com/spf13/cobra"
)

var (
	flagConfig           string
	flagConfDirs         []string
	flagSkipDefaultPaths bool
	flagEncoder          string
	flagDebug            bool
)

var rootCmd = &cobra.Command{
	Use:   "initforge",
	Short: "Assemble Linux boot initramfs and microcode bundles",
	Long: `initforge builds kernel-ready boot artifacts from a declarative
configuration: an initramfs cpio archive assembled from binaries,
kernel modules, systemd units and file trees, and a standalone
microcode bundle.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.SetupLogging(os.Stderr, flagDebug)
	},
}

// Execute runs the initforge command tree, exiting the process with a
// non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringArrayVar(&flagConfDirs, "confdir", nil, "directory of module configuration files (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagSkipDefaultPaths, "skip-default-paths", false, "do not fall back to built-in default config/confdir locations")
	rootCmd.PersistentFlags().StringVar(&flagEncoder, "encoder", "gzip", "output compressor: none, gzip, zstd")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(initramfsCmd)
	rootCmd.AddCommand(microcodeCmd)
}
