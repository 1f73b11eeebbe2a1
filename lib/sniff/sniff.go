// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package sniff

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Format is the canonical tag for a recognized byte layout. It is the
// internal currency of the whole subsystem: sniffing, extension
// resolution, codec dispatch, and archive classification all speak
// Format, never raw extension strings.
type Format uint8

const (
	// FormatPlain means no recognized magic matched. It is the
	// sniffer's answer for text files, unknown binaries, and inputs
	// shorter than any magic. It is never an error.
	FormatPlain Format = iota

	FormatGzip
	FormatBzip2
	FormatXZ
	FormatZstd
	FormatLZ4
	FormatZip
	FormatSevenZip
	FormatRar
	FormatTar
)

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatGzip:
		return "gzip"
	case FormatBzip2:
		return "bzip2"
	case FormatXZ:
		return "xz"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatZip:
		return "zip"
	case FormatSevenZip:
		return "7z"
	case FormatRar:
		return "rar"
	case FormatTar:
		return "tar"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// Suffix returns the conventional file name suffix for the format,
// including the leading dot. FormatPlain has no suffix.
func (f Format) Suffix() string {
	switch f {
	case FormatGzip:
		return ".gz"
	case FormatBzip2:
		return ".bz2"
	case FormatXZ:
		return ".xz"
	case FormatZstd:
		return ".zst"
	case FormatLZ4:
		return ".lz4"
	case FormatZip:
		return ".zip"
	case FormatSevenZip:
		return ".7z"
	case FormatRar:
		return ".rar"
	case FormatTar:
		return ".tar"
	default:
		return ""
	}
}

// magic is one fixed-prefix signature in the sniffing table.
type magic struct {
	prefix []byte
	format Format
}

// magicTable holds every fixed-prefix signature, longest first so that
// prefixes sharing leading bytes cannot shadow each other.
var magicTable = []magic{
	{[]byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, FormatXZ},
	{[]byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}, FormatSevenZip},
	{[]byte{'R', 'a', 'r', '!', 0x1A, 0x07}, FormatRar},
	{[]byte{0x28, 0xB5, 0x2F, 0xFD}, FormatZstd},
	{[]byte{0x04, 0x22, 0x4D, 0x18}, FormatLZ4},
	{[]byte{'P', 'K', 0x03, 0x04}, FormatZip},
	{[]byte{'P', 'K', 0x05, 0x06}, FormatZip}, // empty archive
	{[]byte{'P', 'K', 0x07, 0x08}, FormatZip}, // spanned archive
	{[]byte{'B', 'Z', 'h'}, FormatBzip2},
	{[]byte{0x1F, 0x8B}, FormatGzip},
}

// tar header layout constants. Tar has no short magic at offset zero;
// detection needs the full first header block.
const (
	tarBlockSize      = 512
	tarMagicOffset    = 257
	tarChecksumOffset = 148
	tarChecksumSize   = 8
)

// Detect matches the leading bytes of a file against the magic table
// and returns the format tag. Eight bytes suffice for every
// fixed-prefix signature; tar detection additionally needs the first
// 512-byte header block and degrades to best-effort when the input is
// shorter. Detect never fails: anything unrecognized is FormatPlain.
func Detect(prefix []byte) Format {
	for _, m := range magicTable {
		if bytes.HasPrefix(prefix, m.prefix) {
			return m.format
		}
	}
	if isTarHeader(prefix) {
		return FormatTar
	}
	return FormatPlain
}

// DetectFile reads the leading bytes of the file at path and sniffs
// them. Only the first header block is read regardless of file size.
func DetectFile(path string) (Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return FormatPlain, fmt.Errorf("opening %s for sniffing: %w", path, err)
	}
	defer file.Close()

	prefix := make([]byte, tarBlockSize)
	n, err := io.ReadFull(file, prefix)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return FormatPlain, fmt.Errorf("reading %s for sniffing: %w", path, err)
	}
	return Detect(prefix[:n]), nil
}

// isTarHeader reports whether block looks like the first header block
// of a tar stream. A POSIX stream carries "ustar" at offset 257;
// pre-POSIX streams are recognized by validating the header checksum
// (the sum of all header bytes with the checksum field read as
// spaces). This is inherently best-effort: arbitrary binary data can
// in principle produce a valid checksum.
func isTarHeader(block []byte) bool {
	if len(block) < tarBlockSize {
		return false
	}
	if bytes.Equal(block[tarMagicOffset:tarMagicOffset+5], []byte("ustar")) {
		return true
	}

	// An all-zero block is the end-of-archive marker, not a header.
	allZero := true
	for _, b := range block[:tarBlockSize] {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return false
	}

	recorded, ok := parseOctal(block[tarChecksumOffset : tarChecksumOffset+tarChecksumSize])
	if !ok {
		return false
	}

	var sum int64
	for i, b := range block[:tarBlockSize] {
		if i >= tarChecksumOffset && i < tarChecksumOffset+tarChecksumSize {
			sum += ' '
		} else {
			sum += int64(b)
		}
	}
	return sum == recorded
}

// parseOctal parses a tar-style octal field: optional leading spaces
// or NULs, octal digits, terminated by space or NUL.
func parseOctal(field []byte) (int64, bool) {
	var value int64
	seenDigit := false
	for _, b := range field {
		switch {
		case b == ' ' || b == 0:
			if seenDigit {
				return value, true
			}
		case b >= '0' && b <= '7':
			value = value<<3 | int64(b-'0')
			seenDigit = true
		default:
			return 0, false
		}
	}
	if seenDigit {
		return value, true
	}
	return 0, false
}
