// SPDX-License-Identifier: GPL-3.0-or-later

package kmod

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Context wraps a module tree rooted at a single kernel release directory
// and the index built from it. It is the sole owner of that index and is
// not safe for concurrent mutation, though read-only lookups may run
// concurrently once built.
type Context struct {
	release string
	root    string // .../modules/<release>
	index   map[string]string // module name -> host path, relative to root
	builtin map[string]bool
}

// NewAuto builds a Context for the running kernel's release, rooted at
// /usr/lib/modules/<release>.
func NewAuto() (*Context, error) {
	release, err := hostRelease()
	if err != nil {
		return nil, err
	}

	return New(release, filepath.Join("/usr/lib/modules", release))
}

// NewAt builds a Context for the running kernel's release at an
// explicitly overridden module tree root, which must contain a
// kernel/ subdirectory.
func NewAt(root string) (*Context, error) {
	release, err := hostRelease()
	if err != nil {
		return nil, err
	}

	return New(release, root)
}

// New builds a Context for an explicitly supplied module tree root,
// which must contain a kernel/ subdirectory.
func New(release, root string) (*Context, error) {
	info, err := os.Stat(filepath.Join(root, "kernel"))
	if err != nil || !info.IsDir() {
		return nil, ErrBadDirectory
	}

	ctx := &Context{
		release: release,
		root:    root,
		index:   map[string]string{},
		builtin: map[string]bool{},
	}

	if err := ctx.buildIndex(); err != nil {
		return nil, err
	}

	if err := ctx.loadBuiltins(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return ctx, nil
}

// Release reports the kernel release this context resolves modules for.
func (c *Context) Release() string { return c.release }

func hostRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("kmod: uname: %w", err)
	}

	return string(uts.Release[:bytes.IndexByte(uts.Release[:], 0)]), nil
}

var moduleExtensions = []string{".ko", ".ko.xz", ".ko.zst", ".ko.gz"}

func moduleNameFromFile(relPath string) string {
	base := filepath.Base(relPath)

	for _, ext := range moduleExtensions {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}

	return strings.ReplaceAll(base, "-", "_")
}

func (c *Context) buildIndex() error {
	return filepath.WalkDir(filepath.Join(c.root, "kernel"), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		name := moduleNameFromFile(path)
		for _, ext := range moduleExtensions {
			if strings.HasSuffix(path, ext) {
				rel, err := filepath.Rel(c.root, path)
				if err != nil {
					return err
				}

				c.index[name] = rel

				return nil
			}
		}

		return nil
	})
}

func (c *Context) loadBuiltins() error {
	f, err := os.Open(filepath.Join(c.root, "modules.builtin"))
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c.builtin[moduleNameFromFile(line)] = true
	}

	return scanner.Err()
}
