// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/arcnorm/arcnorm/lib/sniff"
)

// VerifyStream decodes a compressed stream in-process into a
// discarding writer and returns an error if the stream is corrupt or
// truncated. No external tool is involved and nothing is written.
func VerifyStream(format sniff.Format, r io.Reader) error {
	switch format {
	case sniff.FormatGzip:
		reader, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		if _, err := io.Copy(io.Discard, reader); err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		// Close validates the trailing CRC of the final member.
		if err := reader.Close(); err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		return nil

	case sniff.FormatBzip2:
		if _, err := io.Copy(io.Discard, bzip2.NewReader(r)); err != nil {
			return fmt.Errorf("bzip2: %w", err)
		}
		return nil

	case sniff.FormatXZ:
		reader, err := xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("xz: %w", err)
		}
		if _, err := io.Copy(io.Discard, reader); err != nil {
			return fmt.Errorf("xz: %w", err)
		}
		return nil

	case sniff.FormatZstd:
		reader, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		defer reader.Close()
		if _, err := io.Copy(io.Discard, reader.IOReadCloser()); err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		return nil

	case sniff.FormatLZ4:
		if _, err := io.Copy(io.Discard, lz4.NewReader(r)); err != nil {
			return fmt.Errorf("lz4: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("no in-process decoder for format %s", format)
	}
}

// VerifyFile opens the file at path and verifies its stream decodes
// cleanly as the given format.
func VerifyFile(format sniff.Format, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if err := VerifyStream(format, file); err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}
	return nil
}
