// SPDX-License-Identifier: GPL-3.0-or-later

package kmod

import (
	"bytes"
	"debug/elf"
	"fmt"
	"strings"
)

// Info is a kernel module's declared dependency metadata, read from its
// embedded .modinfo ELF section.
type Info struct {
	Aliases      []string
	Depends      []string
	PreSoftdeps  []string
	PostSoftdeps []string
}

// parseModinfo extracts Info from the .modinfo section of an
// uncompressed ELF kernel module image.
func parseModinfo(elfImage []byte) (Info, error) {
	f, err := elf.NewFile(bytes.NewReader(elfImage))
	if err != nil {
		return Info{}, fmt.Errorf("kmod: parse module ELF: %w", err)
	}
	defer f.Close()

	sec := f.Section(".modinfo")
	if sec == nil {
		return Info{}, nil
	}

	data, err := sec.Data()
	if err != nil {
		return Info{}, fmt.Errorf("kmod: read .modinfo section: %w", err)
	}

	var info Info

	for _, field := range bytes.Split(data, []byte{0}) {
		if len(field) == 0 {
			continue
		}

		key, value, ok := strings.Cut(string(field), "=")
		if !ok {
			continue
		}

		switch key {
		case "alias":
			info.Aliases = append(info.Aliases, value)
		case "depends":
			if value != "" {
				info.Depends = append(info.Depends, strings.Split(value, ",")...)
			}
		case "softdep":
			pre, post := parseSoftdep(value)
			info.PreSoftdeps = append(info.PreSoftdeps, pre...)
			info.PostSoftdeps = append(info.PostSoftdeps, post...)
		}
	}

	return info, nil
}

// parseSoftdep splits a softdep field value of the form
// "pre: mod1 mod2 post: mod3" into its pre and post dependency lists.
func parseSoftdep(value string) (pre, post []string) {
	var cur *[]string

	for _, tok := range strings.Fields(value) {
		switch tok {
		case "pre:":
			cur = &pre
		case "post:":
			cur = &post
		default:
			if cur != nil {
				*cur = append(*cur, tok)
			}
		}
	}

	return pre, post
}
