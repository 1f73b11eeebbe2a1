// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/arcnorm/arcnorm/lib/sniff"
)

// encodeAs compresses content with the in-process encoder for the
// given codec family.
func encodeAs(t *testing.T, format sniff.Format, content []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer

	switch format {
	case sniff.FormatGzip:
		writer := gzip.NewWriter(&buffer)
		if _, err := writer.Write(content); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
	case sniff.FormatZstd:
		writer, err := zstd.NewWriter(&buffer)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
		if _, err := writer.Write(content); err != nil {
			t.Fatalf("zstd write: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("zstd close: %v", err)
		}
	case sniff.FormatXZ:
		writer, err := xz.NewWriter(&buffer)
		if err != nil {
			t.Fatalf("xz writer: %v", err)
		}
		if _, err := writer.Write(content); err != nil {
			t.Fatalf("xz write: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("xz close: %v", err)
		}
	case sniff.FormatLZ4:
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(content); err != nil {
			t.Fatalf("lz4 write: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("lz4 close: %v", err)
		}
	default:
		t.Fatalf("no in-process encoder for %s", format)
	}
	return buffer.Bytes()
}

func TestVerifyStreamAcceptsIntactStreams(t *testing.T) {
	content := bytes.Repeat([]byte("verify me thoroughly "), 200)
	for _, format := range []sniff.Format{
		sniff.FormatGzip, sniff.FormatZstd, sniff.FormatXZ, sniff.FormatLZ4,
	} {
		encoded := encodeAs(t, format, content)
		if err := VerifyStream(format, bytes.NewReader(encoded)); err != nil {
			t.Errorf("VerifyStream(%s) on intact stream: %v", format, err)
		}
	}
}

func TestVerifyStreamRejectsTruncation(t *testing.T) {
	content := bytes.Repeat([]byte("verify me thoroughly "), 200)
	for _, format := range []sniff.Format{
		sniff.FormatGzip, sniff.FormatZstd, sniff.FormatXZ, sniff.FormatLZ4,
	} {
		encoded := encodeAs(t, format, content)
		truncated := encoded[:len(encoded)/2]
		if err := VerifyStream(format, bytes.NewReader(truncated)); err == nil {
			t.Errorf("VerifyStream(%s) accepted a truncated stream", format)
		}
	}
}

func TestVerifyStreamRejectsGarbage(t *testing.T) {
	for _, format := range []sniff.Format{
		sniff.FormatGzip, sniff.FormatZstd, sniff.FormatXZ,
	} {
		garbage := strings.NewReader("this is not a compressed stream at all")
		if err := VerifyStream(format, garbage); err == nil {
			t.Errorf("VerifyStream(%s) accepted garbage", format)
		}
	}
}

func TestVerifyStreamUnknownFormat(t *testing.T) {
	if err := VerifyStream(sniff.FormatZip, bytes.NewReader(nil)); err == nil {
		t.Error("VerifyStream should refuse container formats")
	}
}
