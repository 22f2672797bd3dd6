// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/initforge/initforge/internal/elfresolve"
	"github.com/initforge/initforge/internal/kmod"
	"github.com/initforge/initforge/internal/unit"
	"github.com/initforge/initforge/internal/vfs"
)

var canonicalDirs = []string{
	"/dev", "/etc", "/proc", "/root", "/run", "/sys", "/tmp", "/usr", "/var",
}

var canonicalSymlinks = map[string]string{
	"/bin":       "usr/bin",
	"/lib":       "usr/lib",
	"/lib64":     "usr/lib",
	"/sbin":      "usr/bin",
	"/usr/lib64": "lib",
	"/usr/sbin":  "bin",
	"/var/run":   "../run",
}

// Builder assembles an initramfs VFS by driving the ELF, kernel-module
// and systemd unit resolvers. The zero value is not usable; construct
// with New.
type Builder struct {
	fs   *vfs.VFS
	kmod *kmod.Context // nil if no kernel modules are ever requested
}

// New returns a Builder with the canonical directory and symlink seed
// already applied. kmodCtx may be nil if the caller never intends to
// add kernel modules.
func New(kmodCtx *kmod.Context) (*Builder, error) {
	b := &Builder{fs: vfs.New(), kmod: kmodCtx}

	if err := b.seed(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Builder) seed() error {
	for _, d := range canonicalDirs {
		if err := b.fs.CreateDirAll(d); err != nil {
			return fmt.Errorf("initramfs: seed %s: %w", d, err)
		}
	}

	for linkPath, target := range canonicalSymlinks {
		if err := b.fs.CreateDir(path.Dir(linkPath)); err != nil && err != vfs.ErrFileExists {
			return fmt.Errorf("initramfs: seed parent of %s: %w", linkPath, err)
		}

		if err := b.fs.CreateEntry(linkPath, vfs.NewSymlinkEntry(target)); err != nil {
			return fmt.Errorf("initramfs: seed symlink %s: %w", linkPath, err)
		}
	}

	return nil
}

// Freeze drains the assembled VFS into an Archive.
func (b *Builder) Freeze() vfs.Archive {
	return b.fs.Drain()
}

// AddInit installs hostPath as /init. Idempotent.
func (b *Builder) AddInit(hostPath string) error {
	return b.addEntrypoint("/init", hostPath)
}

// AddShutdown installs hostPath as /shutdown. Idempotent.
func (b *Builder) AddShutdown(hostPath string) error {
	return b.addEntrypoint("/shutdown", hostPath)
}

func (b *Builder) addEntrypoint(vfsPath, hostPath string) error {
	if b.fs.ContainsFile(vfsPath) {
		return nil
	}

	entry, err := vfs.EntryFromHost(hostPath)
	if err != nil {
		return fmt.Errorf("initramfs: read %s: %w", hostPath, err)
	}

	return b.fs.CreateEntry(vfsPath, entry)
}

// AddBinary resolves pathOrName (via the binary search paths if
// relative) and installs it along with the transitive closure of its
// DT_NEEDED shared libraries. The VFS's idempotence on already-present
// paths is the sole guard against cycles and re-expansion.
func (b *Builder) AddBinary(pathOrName string) error {
	hostPath := pathOrName

	if !filepath.IsAbs(hostPath) {
		resolved, ok := elfresolve.FindBinary(hostPath)
		if !ok {
			return fmt.Errorf("initramfs: binary not found: %s", pathOrName)
		}

		hostPath = resolved
	}

	return b.addBinaryAt(hostPath)
}

func (b *Builder) addBinaryAt(hostPath string) error {
	if b.fs.Contains(hostPath) {
		return nil
	}

	if err := b.fs.CreateDirAll(path.Dir(hostPath)); err != nil {
		return fmt.Errorf("initramfs: create parent of %s: %w", hostPath, err)
	}

	raw, err := os.ReadFile(hostPath)
	if err != nil {
		return fmt.Errorf("initramfs: read %s: %w", hostPath, err)
	}

	if err := b.fs.CreateEntry(hostPath, vfs.NewFileEntry(raw)); err != nil {
		return fmt.Errorf("initramfs: install %s: %w", hostPath, err)
	}

	needed, err := elfresolve.NeededLibraries(raw)
	if err != nil && err != elfresolve.ErrNoDynamicSegment {
		return fmt.Errorf("initramfs: resolve needed libraries of %s: %w", hostPath, err)
	}

	for _, name := range needed {
		libPath, ok := elfresolve.FindLibrary(name)
		if !ok {
			return &elfresolve.LibraryNotFoundError{Name: name}
		}

		if err := b.addBinaryAt(libPath); err != nil {
			return err
		}
	}

	return nil
}

// AddFileTree ensures destination exists, then for each source either
// copies a single file under destination/basename(source), or mirrors
// a directory's files, directories and symlinks under destination,
// skipping any path already present in the VFS.
func (b *Builder) AddFileTree(sources []string, destination string) error {
	if err := b.fs.CreateDirAll(destination); err != nil {
		return fmt.Errorf("initramfs: create file-tree destination %s: %w", destination, err)
	}

	for _, source := range sources {
		info, err := os.Lstat(source)
		if err != nil {
			return fmt.Errorf("initramfs: stat file-tree source %s: %w", source, err)
		}

		if !info.IsDir() {
			dest := path.Join(destination, filepath.Base(source))
			if err := b.copyHostPath(source, dest); err != nil {
				return err
			}

			continue
		}

		if err := b.mirrorDir(source, destination); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) mirrorDir(source, destination string) error {
	return filepath.WalkDir(source, func(hostPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, hostPath)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		dest := path.Join(destination, filepath.ToSlash(rel))

		if b.fs.Contains(dest) {
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			return b.fs.CreateDirAll(dest)
		}

		return b.copyHostPath(hostPath, dest)
	})
}

func (b *Builder) copyHostPath(hostPath, dest string) error {
	entry, err := vfs.EntryFromHost(hostPath)
	if err != nil {
		return fmt.Errorf("initramfs: read %s: %w", hostPath, err)
	}

	if err := b.fs.CreateDirAll(path.Dir(dest)); err != nil {
		return fmt.Errorf("initramfs: create parent of %s: %w", dest, err)
	}

	return b.fs.CreateEntry(dest, entry)
}

// AddSymlink installs a symlink at linkPath pointing at target, unless
// target already exists in the VFS (the guarded form: see the module's
// design notes on the two observed symlink-handling generations).
func (b *Builder) AddSymlink(linkPath, target string) error {
	if b.fs.Contains(target) {
		return nil
	}

	if err := b.fs.CreateDirAll(path.Dir(linkPath)); err != nil {
		return fmt.Errorf("initramfs: create parent of %s: %w", linkPath, err)
	}

	return b.fs.CreateEntry(linkPath, vfs.NewSymlinkEntry(target))
}

// AddKernelModuleByName installs the named kernel module and its
// dependency closure.
func (b *Builder) AddKernelModuleByName(name string) error {
	if b.kmod == nil {
		return fmt.Errorf("initramfs: kernel module %s requested but no module context configured", name)
	}

	return b.kmod.Install(b.fs, name)
}

// AddKernelModuleByPath installs the kernel module at hostPath and its
// dependency closure.
func (b *Builder) AddKernelModuleByPath(hostPath string) error {
	if b.kmod == nil {
		return fmt.Errorf("initramfs: kernel module %s requested but no module context configured", hostPath)
	}

	return b.kmod.InstallByPath(b.fs, hostPath)
}

// AddUnit locates, installs and recursively expands the named systemd
// unit: its file, its binaries' closures, its wants/ symlink (if any),
// and its Requires= dependencies.
func (b *Builder) AddUnit(name string) error {
	u, err := unit.Load(name)
	if err != nil {
		return err
	}

	return b.installUnit(name, name, u)
}

// AddUnitByPath installs the systemd unit at hostPath directly,
// bypassing the unit search paths, along with its binaries' closures,
// wants/ symlink and Requires= dependencies. The unit file is installed
// at hostPath itself; the wants/ install path and symlink target are
// derived from hostPath's basename, as for a name-resolved unit.
func (b *Builder) AddUnitByPath(hostPath string) error {
	u, err := unit.LoadByPath(hostPath)
	if err != nil {
		return err
	}

	name := filepath.Base(hostPath)

	return b.installUnit(name, name, u)
}

func (b *Builder) installUnit(label, symlinkName string, u *unit.Unit) error {
	if b.fs.ContainsFile(u.Path) {
		return nil
	}

	if err := b.fs.CreateDirAll(path.Dir(u.Path)); err != nil {
		return fmt.Errorf("initramfs: create parent of unit %s: %w", label, err)
	}

	if err := b.fs.CreateEntry(u.Path, vfs.NewFileEntry(u.Data)); err != nil {
		return fmt.Errorf("initramfs: install unit %s: %w", label, err)
	}

	for _, binary := range u.Binaries {
		if err := b.AddBinary(binary); err != nil {
			return fmt.Errorf("initramfs: unit %s binary %s: %w", label, binary, err)
		}
	}

	if u.InstallPath != "" {
		target := "../" + symlinkName

		if err := b.fs.CreateDirAll(path.Dir(u.InstallPath)); err != nil {
			return fmt.Errorf("initramfs: create wants directory for %s: %w", label, err)
		}

		if err := b.fs.CreateEntry(u.InstallPath, vfs.NewSymlinkEntry(target)); err != nil {
			return fmt.Errorf("initramfs: install wants symlink for %s: %w", label, err)
		}
	}

	for _, dep := range u.Dependencies {
		if err := b.AddUnit(dep); err != nil {
			return fmt.Errorf("initramfs: unit %s dependency %s: %w", label, dep, err)
		}
	}

	return nil
}
