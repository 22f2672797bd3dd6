// SPDX-License-Identifier: GPL-3.0-or-later

package driver

import (
	"bytes"
	"fmt"

	"github.com/initforge/initforge/internal/cpio"
	"github.com/initforge/initforge/internal/codec"
	"github.com/initforge/initforge/internal/config"
	"github.com/initforge/initforge/internal/initramfs"
	"github.com/initforge/initforge/internal/kmod"
	"github.com/initforge/initforge/internal/microcode"
	"github.com/initforge/initforge/internal/vfs"
)

// BuildInitramfs drives the initramfs builder from decoded
// configuration, serializes the result, and compresses it with the
// given encoder. If ucode is non-empty, it is treated as an
// already-serialized uncompressed microcode cpio and prepended to the
// compressed root archive, matching the kernel's expected early-init
// layout.
func BuildInitramfs(
	cfg *config.InitramfsConfig,
	modules map[string]*config.ModuleConfig,
	kmodCtx *kmod.Context,
	ucode []byte,
	encoder codec.Kind,
	workers int,
) ([]byte, error) {
	b, err := initramfs.New(kmodCtx)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	if err := b.AddInit(cfg.Init); err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	if cfg.Shutdown != "" {
		if err := b.AddShutdown(cfg.Shutdown); err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
	}

	for _, name := range cfg.Modules {
		mod, ok := modules[name]
		if !ok {
			return nil, &UnknownModuleError{Name: name}
		}

		if err := applyModule(b, mod); err != nil {
			return nil, fmt.Errorf("driver: module %s: %w", name, err)
		}
	}

	archiveBytes, err := serialize(b.Freeze())
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	compressed, err := codec.Encode(encoder, archiveBytes, workers)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	if len(ucode) == 0 {
		return compressed, nil
	}

	return append(append([]byte{}, ucode...), compressed...), nil
}

func applyModule(b *initramfs.Builder, mod *config.ModuleConfig) error {
	for _, ref := range mod.Binaries {
		target := ref.Path
		if target == "" {
			target = ref.Name
		}

		if err := b.AddBinary(target); err != nil {
			return err
		}
	}

	for _, ft := range mod.Files {
		if err := b.AddFileTree(ft.Sources, ft.Destination); err != nil {
			return err
		}
	}

	for _, sl := range mod.Symlinks {
		if err := b.AddSymlink(sl.Path, sl.Target); err != nil {
			return err
		}
	}

	for _, ref := range mod.KernelModules {
		var err error
		if ref.Path != "" {
			err = b.AddKernelModuleByPath(ref.Path)
		} else {
			err = b.AddKernelModuleByName(ref.Name)
		}

		if err != nil {
			return err
		}
	}

	for _, ref := range mod.Units {
		var err error
		if ref.Path != "" {
			err = b.AddUnitByPath(ref.Path)
		} else {
			err = b.AddUnit(ref.Name)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// BuildMicrocode drives the microcode builder from decoded
// configuration and serializes an uncompressed cpio bundle.
func BuildMicrocode(cfg *config.MicrocodeConfig) ([]byte, error) {
	b := microcode.New()

	if cfg.AMDUcode != "" {
		if err := b.AddAMD(cfg.AMDUcode); err != nil {
			return nil, fmt.Errorf("driver: amd microcode: %w", err)
		}
	}

	if cfg.IntelUcode != "" {
		if err := b.AddIntel(cfg.IntelUcode); err != nil {
			return nil, fmt.Errorf("driver: intel microcode: %w", err)
		}
	}

	return serialize(b.Build())
}

func serialize(archive vfs.Archive) ([]byte, error) {
	var buf bytes.Buffer
	if err := cpio.NewWriter(&buf).WriteArchive(archive); err != nil {
		return nil, fmt.Errorf("serialize archive: %w", err)
	}

	return buf.Bytes(), nil
}
