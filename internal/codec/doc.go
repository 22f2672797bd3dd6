// SPDX-License-Identifier: GPL-3.0-or-later

// Package codec implements the three output encoders the driver may
// select: none (identity), gzip (multi-worker, via pgzip) and zstd. The
// core hands these a finished byte buffer; they have no knowledge of
// cpio or the VFS.
package codec
