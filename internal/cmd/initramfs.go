// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"

	"github.com/initforge/initforge/internal/cmdutil"
	"github.com/initforge/initforge/internal/codec"
	"github.com/initforge/initforge/internal/config"
	"github.com/initforge/initforge/internal/driver"
	"github.com/initforge/initforge/internal/kmod"
	"github.com/spf13/cobra"
)

var (
	flagUcode   string
	flagModules string
	flagOutput  string
)

var initramfsCmd = &cobra.Command{
	Use:   "initramfs",
	Short: "Build an initramfs cpio archive",
	RunE:  runInitramfs,
}

func init() {
	initramfsCmd.Flags().StringVar(&flagUcode, "ucode", "", "optional microcode bundle to prepend")
	initramfsCmd.Flags().StringVar(&flagModules, "modules", "", "override the kernel module tree directory")
	initramfsCmd.Flags().StringVar(&flagOutput, "output", "", "output path, or - for stdout")
	_ = initramfsCmd.MarkFlagRequired("output")
}

func runInitramfs(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath(flagConfig, "initramfs", flagSkipDefaultPaths)
	if err != nil {
		return err
	}

	cfg, err := config.LoadInitramfsConfig(cfgPath)
	if err != nil {
		return err
	}

	dirs := resolveConfDirs(flagConfDirs, flagSkipDefaultPaths)

	modules, err := loadModules(dirs)
	if err != nil {
		return err
	}

	kmodCtx, err := resolveKmodContext(flagModules, cfg.Settings.KernelModulePath)
	if err != nil {
		return err
	}

	var ucode []byte
	if flagUcode != "" {
		ucode, err = os.ReadFile(flagUcode)
		if err != nil {
			return fmt.Errorf("read ucode: %w", err)
		}
	}

	encoder, err := codec.ParseKind(flagEncoder)
	if err != nil {
		return err
	}

	out, err := driver.BuildInitramfs(cfg, modules, kmodCtx, ucode, encoder, 0)
	if err != nil {
		return err
	}

	return cmdutil.WriteOutput(flagOutput, out)
}

// resolveKmodContext honors, in order: the --modules flag, the
// configuration's settings.kernel_module_path, and finally the running
// kernel's own module tree.
func resolveKmodContext(flagRoot, configRoot string) (*kmod.Context, error) {
	switch {
	case flagRoot != "":
		return kmod.NewAt(flagRoot)
	case configRoot != "":
		return kmod.NewAt(configRoot)
	default:
		return kmod.NewAuto()
	}
}
