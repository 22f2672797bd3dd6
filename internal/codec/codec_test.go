// SPDX-License-Identifier: GPL-3.0-or-later

package codec_test

import (
	"bytes"
	"testing"

	"github.com/initforge/initforge/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyArchive() []byte {
	return bytes.Repeat([]byte("0123456789abcdef"), 4096)
}

func TestEncode_NoneIsIdentity(t *testing.T) {
	data := dummyArchive()

	got, err := codec.Encode(codec.None, data, 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestEncode_GzipShrinksCompressibleData(t *testing.T) {
	data := dummyArchive()

	got, err := codec.Encode(codec.Gzip, data, 0)
	require.NoError(t, err)
	assert.Less(t, len(got), len(data))
}

func TestEncode_ZstdShrinksCompressibleData(t *testing.T) {
	data := dummyArchive()

	got, err := codec.Encode(codec.Zstd, data, 0)
	require.NoError(t, err)
	assert.Less(t, len(got), len(data))
}

func TestParseKind(t *testing.T) {
	k, err := codec.ParseKind("zstd")
	require.NoError(t, err)
	assert.Equal(t, codec.Zstd, k)

	_, err = codec.ParseKind("bogus")
	assert.Error(t, err)
}
