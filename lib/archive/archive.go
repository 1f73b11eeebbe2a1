// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Archive is an opened container: a path plus its classified type and
// the resolved backend tool. The same archive may be enumerated once
// and then streamed member-by-member; each operation runs its own
// backend invocation.
type Archive struct {
	Path string
	Type Type

	// tool is the resolved backend binary. Empty for a 7z archive
	// means no 7z binary was found and the pure-Go reader is used
	// instead.
	tool string

	logger *slog.Logger
}

// Open classifies the archive at path and resolves its backend tool.
// A missing backend tool is fatal, with one exception: a 7z archive
// falls back to the built-in pure-Go reader.
func Open(path string, logger *slog.Logger) (*Archive, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}

	archive := &Archive{Path: path, Type: Classify(path, logger), logger: logger}

	switch archive.Type {
	case TypeTar:
		tool, err := exec.LookPath("tar")
		if err != nil {
			return nil, fmt.Errorf("required tool \"tar\" not found in PATH")
		}
		archive.tool = tool

	case TypeZip:
		tool, err := exec.LookPath("unzip")
		if err != nil {
			return nil, fmt.Errorf("required tool \"unzip\" not found in PATH")
		}
		archive.tool = tool

	case TypeSevenZip:
		tool, err := exec.LookPath("7z")
		if err != nil {
			tool, err = exec.LookPath("7za")
		}
		if err != nil {
			logger.Debug("no 7z binary found, using built-in 7z reader", "archive", path)
			tool = ""
		}
		archive.tool = tool
	}

	return archive, nil
}

// Entries enumerates the archive's regular (non-directory) member
// paths in the order the backend reports them, calling fn for each.
// The sequence is finite and one-pass; call Entries again for another
// pass. An error from fn stops the enumeration and is returned.
func (a *Archive) Entries(ctx context.Context, fn func(member string) error) error {
	switch a.Type {
	case TypeTar:
		return a.tarEntries(ctx, fn)
	case TypeZip:
		return a.zipEntries(ctx, fn)
	default:
		if a.tool == "" {
			return a.sevenZipFallbackEntries(fn)
		}
		return a.sevenZipEntries(ctx, fn)
	}
}

// OpenEntry opens a read stream of exactly one member's decompressed
// bytes, straight from the container backend. No intermediate file is
// written. The caller must Close the stream; a stream that ends with
// a backend failure reports the failure from Read.
func (a *Archive) OpenEntry(ctx context.Context, member string) (io.ReadCloser, error) {
	switch a.Type {
	case TypeTar:
		return a.openToolEntry(ctx, "-xOf", member)
	case TypeZip:
		return a.openZipEntry(ctx, member)
	default:
		if a.tool == "" {
			return a.openSevenZipFallbackEntry(member)
		}
		return a.openSevenZipEntry(ctx, member)
	}
}

// openToolEntry starts the tar backend streaming one member to
// stdout.
func (a *Archive) openToolEntry(ctx context.Context, flag, member string) (io.ReadCloser, error) {
	command := exec.CommandContext(ctx, a.tool, flag, a.Path, member)
	stream, err := startStream(command)
	if err != nil {
		return nil, fmt.Errorf("streaming %s from %s: %w", member, a.Path, err)
	}
	return stream, nil
}
