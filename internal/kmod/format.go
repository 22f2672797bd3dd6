// SPDX-License-Identifier: GPL-3.0-or-later

package kmod

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format identifies the on-disk encoding of a kernel module payload.
type Format int

const (
	FormatELF Format = iota
	FormatZstd
	FormatXZ
	FormatGzip
)

var magics = []struct {
	bytes  []byte
	format Format
}{
	{[]byte{0x7f, 0x45, 0x4c, 0x46}, FormatELF},
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, FormatZstd},
	{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, FormatXZ},
	{[]byte{0x1f, 0x8b}, FormatGzip},
}

// DetectFormat classifies a module payload by its leading magic bytes.
func DetectFormat(payload []byte) (Format, error) {
	if len(payload) < 6 {
		return 0, ErrTooSmallForMagic
	}

	for _, m := range magics {
		if bytes.HasPrefix(payload, m.bytes) {
			return m.format, nil
		}
	}

	return 0, ErrUnknownMagic
}

// Decompress returns the uncompressed ELF payload of a module file,
// regardless of its on-disk compression format.
func Decompress(payload []byte) ([]byte, error) {
	format, err := DetectFormat(payload)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatELF:
		return payload, nil
	case FormatGzip:
		r, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("kmod: open gzip module: %w", err)
		}
		defer r.Close()

		return io.ReadAll(r)
	case FormatXZ:
		r, err := xz.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("kmod: open xz module: %w", err)
		}

		return io.ReadAll(r)
	case FormatZstd:
		r, err := zstd.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("kmod: open zstd module: %w", err)
		}
		defer r.Close()

		return io.ReadAll(r)
	default:
		return nil, ErrUnknownMagic
	}
}
