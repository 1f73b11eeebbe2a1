// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package sniff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Gzip member header flag bits (RFC 1952).
const (
	GzipFlagText    = 1 << 0
	GzipFlagHCRC    = 1 << 1
	GzipFlagExtra   = 1 << 2
	GzipFlagName    = 1 << 3
	GzipFlagComment = 1 << 4
)

// gzipFlagsOffset is the position of the FLG byte in the fixed part
// of the member header.
const gzipFlagsOffset = 3

// GzipHeader holds the fields of one gzip member header. The
// structured fields come from the gzip reader; Flags is the raw FLG
// byte, which the reader does not expose.
type GzipHeader struct {
	ModTime time.Time
	OS      byte
	Flags   byte
	Name    string
	Comment string
	Extra   []byte
}

// ReadGzipHeader parses the member header at the start of r. The body
// is not decompressed. Returns an error when the stream is not gzip or
// the header is malformed.
func ReadGzipHeader(r io.Reader) (*GzipHeader, error) {
	buffered := bufio.NewReader(r)

	// The fixed header is ten bytes; the FLG byte sits at offset 3.
	// Peek so the gzip reader still sees the whole stream.
	fixed, err := buffered.Peek(10)
	if err != nil {
		return nil, fmt.Errorf("reading gzip header: %w", err)
	}
	flags := fixed[gzipFlagsOffset]

	reader, err := gzip.NewReader(buffered)
	if err != nil {
		return nil, fmt.Errorf("parsing gzip header: %w", err)
	}
	defer reader.Close()

	return &GzipHeader{
		ModTime: reader.Header.ModTime,
		OS:      reader.Header.OS,
		Flags:   flags,
		Name:    reader.Header.Name,
		Comment: reader.Header.Comment,
		Extra:   reader.Header.Extra,
	}, nil
}

// ReadGzipHeaderFile parses the member header of the gzip file at
// path.
func ReadGzipHeaderFile(path string) (*GzipHeader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	return ReadGzipHeader(file)
}

// FlagNames returns the symbolic names of the set flag bits, in bit
// order.
func (h *GzipHeader) FlagNames() []string {
	names := []string{}
	for _, entry := range []struct {
		bit  byte
		name string
	}{
		{GzipFlagText, "FTEXT"},
		{GzipFlagHCRC, "FHCRC"},
		{GzipFlagExtra, "FEXTRA"},
		{GzipFlagName, "FNAME"},
		{GzipFlagComment, "FCOMMENT"},
	} {
		if h.Flags&entry.bit != 0 {
			names = append(names, entry.name)
		}
	}
	return names
}

// Summary renders the header fields as a multi-line human-readable
// block, one "key: value" per line.
func (h *GzipHeader) Summary() string {
	var b strings.Builder
	if h.ModTime.IsZero() || h.ModTime.Unix() == 0 {
		fmt.Fprintf(&b, "mtime: not set\n")
	} else {
		fmt.Fprintf(&b, "mtime: %s\n", h.ModTime.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "os: %d\n", h.OS)
	fmt.Fprintf(&b, "flags: %08b", h.Flags)
	if names := h.FlagNames(); len(names) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
	}
	b.WriteByte('\n')
	if h.Name != "" {
		fmt.Fprintf(&b, "name: %s\n", h.Name)
	}
	if h.Comment != "" {
		fmt.Fprintf(&b, "comment: %s\n", h.Comment)
	}
	if len(h.Extra) > 0 {
		fmt.Fprintf(&b, "extra: %d bytes\n", len(h.Extra))
	}
	return b.String()
}
