// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest builds the canonical digest listing of an
// archive's contents: one "<digest>  <path>" line per regular member,
// sorted by member path under byte-exact ordering. The listing is the
// integrity artifact for the archive, so it is all-or-nothing — any
// member that cannot be streamed and digested aborts the whole build.
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arcnorm/arcnorm/lib/digest"
)

// Container is the archive backend the builder reads from. It is
// satisfied by *archive.Archive; tests substitute in-memory fakes.
type Container interface {
	// Entries calls fn once per regular member, in backend order.
	Entries(ctx context.Context, fn func(member string) error) error

	// OpenEntry opens a read stream of one member's decompressed
	// bytes.
	OpenEntry(ctx context.Context, member string) (io.ReadCloser, error)
}

// Entry is one line of the manifest: a member path exactly as the
// container reported it, and the lowercase hex digest of the member's
// decompressed bytes.
type Entry struct {
	Digest string
	Path   string
}

// Builder orchestrates enumeration, per-member digesting, and the
// final sorted write.
type Builder struct {
	Container Container
	Algorithm digest.Algorithm
	Logger    *slog.Logger
}

// Build enumerates the archive and digests every regular member,
// returning entries sorted by path under byte-exact ordering. The
// enumeration order never leaks into the result. Any streaming or
// digesting failure aborts the build: a manifest missing an entry
// would be silently misleading.
func (b *Builder) Build(ctx context.Context) ([]Entry, error) {
	var members []string
	seen := make(map[string]bool)

	err := b.Container.Entries(ctx, func(member string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Two regular entries at the identical path would make the
		// manifest ambiguous; fail fast rather than pick a winner.
		if seen[member] {
			return fmt.Errorf("archive reports duplicate member %q", member)
		}
		seen[member] = true
		members = append(members, member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(members))
	for _, member := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum, err := b.digestMember(ctx, member)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Digest: sum, Path: member})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// digestMember streams one member's decompressed bytes through the
// hash accumulator. No intermediate file is ever written.
func (b *Builder) digestMember(ctx context.Context, member string) (string, error) {
	stream, err := b.Container.OpenEntry(ctx, member)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	sum, err := b.Algorithm.Sum(stream)
	if err != nil {
		return "", fmt.Errorf("digesting %s: %w", member, err)
	}
	return sum, nil
}

// Write emits the manifest lines: digest, two spaces, path, newline.
// Paths pass through byte-for-byte.
func Write(w io.Writer, entries []Entry) error {
	buffered := bufio.NewWriter(w)
	for _, entry := range entries {
		if _, err := fmt.Fprintf(buffered, "%s  %s\n", entry.Digest, entry.Path); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// BuildFile builds the manifest and writes it to outputPath through a
// temp-file-then-atomic-rename, so a failed build never leaves a
// partial manifest behind. An archive with zero regular members
// produces an (explicitly) empty manifest; that is not an error.
func (b *Builder) BuildFile(ctx context.Context, outputPath string) error {
	entries, err := b.Build(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		b.Logger.Info("no files found in archive")
	}

	temp := fmt.Sprintf("%s.arcnorm-%d.tmp", outputPath, os.Getpid())
	file, err := os.OpenFile(temp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating manifest temp file: %w", err)
	}

	if err := Write(file, entries); err != nil {
		file.Close()
		os.Remove(temp)
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temp)
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(temp, outputPath); err != nil {
		os.Remove(temp)
		return fmt.Errorf("renaming manifest into place: %w", err)
	}

	b.Logger.Info("manifest written", "output", outputPath, "entries", len(entries),
		"algorithm", b.Algorithm.String())
	return nil
}

// DefaultOutputPath derives the manifest path from the archive path:
// the final suffix is stripped and the digest algorithm's name is
// appended as the new suffix.
func DefaultOutputPath(archivePath string, algorithm digest.Algorithm) string {
	extension := filepath.Ext(archivePath)
	base := archivePath[:len(archivePath)-len(extension)]
	return base + "." + algorithm.String()
}
