// SPDX-License-Identifier: GPL-3.0-or-later

package codec

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

// Kind selects an output encoder.
type Kind string

const (
	None Kind = "none"
	Gzip Kind = "gzip"
	Zstd Kind = "zstd"
)

// ParseKind validates a user-supplied encoder name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case None, Gzip, Zstd:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("codec: unknown encoder %q", s)
	}
}

// Encode compresses data per kind. Workers bounds the number of
// compression worker goroutines gzip may use; a value <= 0 defaults to
// runtime.NumCPU().
func Encode(kind Kind, data []byte, workers int) ([]byte, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	switch kind {
	case None:
		return data, nil
	case Gzip:
		return encodeGzip(data, workers)
	case Zstd:
		return encodeZstd(data)
	default:
		return nil, fmt.Errorf("codec: unknown encoder %q", kind)
	}
}

func encodeGzip(data []byte, workers int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := pgzip.NewWriterLevel(&buf, pgzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("codec: new gzip writer: %w", err)
	}

	if err := w.SetConcurrency(1<<20, workers); err != nil {
		return nil, fmt.Errorf("codec: configure gzip concurrency: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("codec: gzip write: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: gzip close: %w", err)
	}

	return buf.Bytes(), nil
}

func encodeZstd(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("codec: new zstd writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("codec: zstd write: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: zstd close: %w", err)
	}

	return buf.Bytes(), nil
}
