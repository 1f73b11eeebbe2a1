// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package sniff

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
)

func writeGzip(t *testing.T, header gzip.Header, content []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := gzip.NewWriter(&buffer)
	writer.Header = header
	if _, err := writer.Write(content); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buffer.Bytes()
}

func TestReadGzipHeader(t *testing.T) {
	modTime := time.Unix(1700000000, 0)
	data := writeGzip(t, gzip.Header{
		Name:    "original.txt",
		Comment: "kept for posterity",
		ModTime: modTime,
	}, []byte("payload"))

	header, err := ReadGzipHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGzipHeader: %v", err)
	}

	if header.Name != "original.txt" {
		t.Errorf("Name = %q, want original.txt", header.Name)
	}
	if header.Comment != "kept for posterity" {
		t.Errorf("Comment = %q, want kept for posterity", header.Comment)
	}
	if !header.ModTime.Equal(modTime) {
		t.Errorf("ModTime = %v, want %v", header.ModTime, modTime)
	}
	if header.Flags&GzipFlagName == 0 {
		t.Error("FNAME flag not set in raw flags byte")
	}
	if header.Flags&GzipFlagComment == 0 {
		t.Error("FCOMMENT flag not set in raw flags byte")
	}

	names := header.FlagNames()
	if !slices.Contains(names, "FNAME") || !slices.Contains(names, "FCOMMENT") {
		t.Errorf("FlagNames = %v, want FNAME and FCOMMENT", names)
	}
}

func TestReadGzipHeaderBareStream(t *testing.T) {
	data := writeGzip(t, gzip.Header{}, []byte("payload"))

	header, err := ReadGzipHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGzipHeader: %v", err)
	}
	if header.Name != "" || header.Comment != "" {
		t.Errorf("bare stream carried name %q comment %q", header.Name, header.Comment)
	}
	if header.Flags&(GzipFlagName|GzipFlagComment|GzipFlagExtra) != 0 {
		t.Errorf("flags %08b set on a bare stream", header.Flags)
	}
}

func TestReadGzipHeaderNotGzip(t *testing.T) {
	if _, err := ReadGzipHeader(strings.NewReader("definitely not gzip data")); err == nil {
		t.Fatal("ReadGzipHeader should fail on non-gzip input")
	}
}

func TestReadGzipHeaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.gz")
	data := writeGzip(t, gzip.Header{Name: "inner"}, []byte("x"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	header, err := ReadGzipHeaderFile(path)
	if err != nil {
		t.Fatalf("ReadGzipHeaderFile: %v", err)
	}
	if header.Name != "inner" {
		t.Errorf("Name = %q, want inner", header.Name)
	}
}

func TestGzipHeaderSummary(t *testing.T) {
	header := &GzipHeader{
		ModTime: time.Unix(1700000000, 0),
		OS:      3,
		Flags:   GzipFlagName,
		Name:    "inner.txt",
	}
	summary := header.Summary()
	for _, want := range []string{"os: 3", "FNAME", "name: inner.txt"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary missing %q:\n%s", want, summary)
		}
	}
}
