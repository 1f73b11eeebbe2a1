// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/bodgit/sevenzip"
)

// sevenZipEntries lists the archive with "7z l -slt" and feeds the
// regular member paths to fn.
func (a *Archive) sevenZipEntries(ctx context.Context, fn func(member string) error) error {
	command := exec.CommandContext(ctx, a.tool, "l", "-slt", a.Path)
	stream, err := startStream(command)
	if err != nil {
		return fmt.Errorf("listing %s: %w", a.Path, err)
	}
	defer stream.Close()

	if err := parseSevenZipListing(stream, fn); err != nil {
		return fmt.Errorf("listing %s: %w", a.Path, err)
	}
	return nil
}

// parserState is the state of the listing parser.
type parserState uint8

const (
	// awaitingBlock consumes the banner and archive summary before
	// the first block-separator line.
	awaitingBlock parserState = iota

	// inBlock accumulates the fields of one member record.
	inBlock
)

// blockSeparator is the line that ends the listing preamble. After
// it, member records are separated by blank lines.
const blockSeparator = "----------"

// entryRecord accumulates the fields of one member block.
type entryRecord struct {
	path       string
	attributes string
}

// isDirectory reports whether the accumulated attributes mark the
// member as a directory. The attribute field starts with a token of
// capital flag letters ("D_", "A_", "D drwxr-xr-x"); a 'D' in that
// token means directory.
func (r *entryRecord) isDirectory() bool {
	token, _, _ := strings.Cut(r.attributes, " ")
	return strings.ContainsRune(token, 'D')
}

// parseSevenZipListing parses the "7z l -slt" block format as a
// line-oriented state machine. Blocks accumulate "Path = " and
// "Attributes = " fields and are flushed at each blank-line boundary;
// the final block has no trailing separator and is flushed when the
// listing ends. Paths may contain any bytes except newline, including
// embedded "=" and leading/trailing spaces after the field prefix's
// single space.
func parseSevenZipListing(r io.Reader, fn func(member string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	state := awaitingBlock
	var record entryRecord

	flush := func() error {
		if record.path != "" && !record.isDirectory() {
			if err := fn(record.path); err != nil {
				return err
			}
		}
		record = entryRecord{}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch state {
		case awaitingBlock:
			if line == blockSeparator {
				state = inBlock
			}

		case inBlock:
			if line == "" {
				if err := flush(); err != nil {
					return err
				}
				continue
			}
			if value, ok := strings.CutPrefix(line, "Path = "); ok {
				record.path = value
			} else if value, ok := strings.CutPrefix(line, "Attributes = "); ok {
				record.attributes = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading listing output: %w", err)
	}

	if state == inBlock {
		return flush()
	}
	return nil
}

// openSevenZipEntry streams one member's decompressed bytes via
// "7z x -so". The -spd switch disables wildcard interpretation of the
// member argument, so paths containing "*" or "?" select exactly
// themselves.
func (a *Archive) openSevenZipEntry(ctx context.Context, member string) (io.ReadCloser, error) {
	command := exec.CommandContext(ctx, a.tool, "x", "-so", "-spd", a.Path, member)
	stream, err := startStream(command)
	if err != nil {
		return nil, fmt.Errorf("streaming %s from %s: %w", member, a.Path, err)
	}
	return stream, nil
}

// sevenZipFallbackEntries enumerates with the pure-Go reader when no
// 7z binary is installed.
func (a *Archive) sevenZipFallbackEntries(fn func(member string) error) error {
	reader, err := sevenzip.OpenReader(a.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", a.Path, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if err := fn(file.Name); err != nil {
			return err
		}
	}
	return nil
}

// fallbackEntryStream keeps the archive reader alive for the lifetime
// of one member stream.
type fallbackEntryStream struct {
	io.ReadCloser
	archive *sevenzip.ReadCloser
}

func (s *fallbackEntryStream) Close() error {
	err := s.ReadCloser.Close()
	if closeErr := s.archive.Close(); err == nil {
		err = closeErr
	}
	return err
}

// openSevenZipFallbackEntry streams one member through the pure-Go
// reader.
func (a *Archive) openSevenZipFallbackEntry(member string) (io.ReadCloser, error) {
	reader, err := sevenzip.OpenReader(a.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.Path, err)
	}

	for _, file := range reader.File {
		if file.FileInfo().IsDir() || file.Name != member {
			continue
		}
		entry, err := file.Open()
		if err != nil {
			reader.Close()
			return nil, fmt.Errorf("streaming %s from %s: %w", member, a.Path, err)
		}
		return &fallbackEntryStream{ReadCloser: entry, archive: reader}, nil
	}

	reader.Close()
	return nil, fmt.Errorf("member %s not found in %s", member, a.Path)
}
