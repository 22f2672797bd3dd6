// SPDX-License-Identifier: GPL-3.0-or-later

package unit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/initforge/initforge/internal/pathsearch"
)

// SearchPaths is the ordered list of directories searched for a named
// unit file.
var SearchPaths = []string{
	"/usr/lib/systemd/system/",
	"/etc/systemd/system/",
	"/etc/systemd/system.control/",
	"/etc/systemd/system.attached/",
}

// execStartSigils are the leading characters systemd strips from the
// binary path in an ExecStart= line before it names an executable.
const execStartSigils = "@!:+-"

// Unit is a parsed systemd unit file together with the binaries and
// dependency unit names it declares.
type Unit struct {
	Path         string
	Data         []byte
	Binaries     []string
	Dependencies []string
	InstallPath  string // empty if the unit's kind has no wants/ symlink
}

// Find locates name on SearchPaths.
func Find(name string) (string, bool) {
	return pathsearch.Search(name, SearchPaths)
}

// Load locates and parses the named unit file.
func Load(name string) (*Unit, error) {
	path, ok := Find(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	return loadFrom(path, name)
}

// LoadByPath parses the unit file at hostPath directly, bypassing
// SearchPaths. The wants/ install path (if any) is still derived from
// the file's own basename, matching the convention Load uses for
// name-resolved units.
func LoadByPath(hostPath string) (*Unit, error) {
	return loadFrom(hostPath, filepath.Base(hostPath))
}

func loadFrom(path, name string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	secs := parse(data)

	return &Unit{
		Path:         path,
		Data:         data,
		Binaries:     extractBinaries(secs),
		Dependencies: extractDependencies(secs),
		InstallPath:  installPath(name),
	}, nil
}

func extractDependencies(secs sections) []string {
	values := secs.values("Unit", "Requires")
	if len(values) == 0 {
		return nil
	}

	// Only the first Requires= occurrence is considered; repeated keys
	// do not accumulate.
	var deps []string

	for _, field := range strings.Fields(values[0]) {
		if strings.HasSuffix(field, ".slice") {
			continue
		}

		deps = append(deps, field)
	}

	return deps
}

func extractBinaries(secs sections) []string {
	if !secs.has("Service") {
		return nil
	}

	var bins []string

	for _, v := range secs.values("Service", "ExecStart") {
		fields := strings.Fields(v)
		if len(fields) == 0 {
			continue
		}

		bins = append(bins, strings.TrimLeft(fields[0], execStartSigils))
	}

	return bins
}

// TargetWants is the ordered list of *.wants/ directories searched for
// .path, .service and .target units.
var TargetWants = []string{
	"/usr/lib/systemd/system/initrd.target.wants/",
	"/usr/lib/systemd/system/initrd-root-device.target.wants/",
	"/usr/lib/systemd/system/initrd-root-fs.target.wants/",
	"/usr/lib/systemd/system/sysinit.target.wants/",
}

// SocketWants is the *.wants/ directory searched for .socket units.
var SocketWants = "/usr/lib/systemd/system/sockets.target.wants/"

// installPath computes the first existing *.wants/ directory for unit
// name's kind, as determined by its file extension. It returns the
// empty string for extensions with no wants/ symlink convention.
func installPath(name string) string {
	switch filepath.Ext(name) {
	case ".path", ".service", ".target":
		for _, dir := range TargetWants {
			if p, ok := pathsearch.Search(name, []string{dir}); ok {
				return p
			}
		}
	case ".socket":
		if p, ok := pathsearch.Search(name, []string{SocketWants}); ok {
			return p
		}
	}

	return ""
}
