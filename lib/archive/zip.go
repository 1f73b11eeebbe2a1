// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// zipEntries lists member names with "unzip -Z1" (zipinfo terse
// mode), one name per line. Directory members end in "/" and are
// skipped. Names are buffered before the callback runs because the
// exit status decides how to read them: zipinfo has no terse spelling
// for an entryless archive and instead prints a notice line and exits
// 1, which must enumerate as empty rather than fail.
func (a *Archive) zipEntries(ctx context.Context, fn func(member string) error) error {
	command := exec.CommandContext(ctx, a.tool, "-Z1", a.Path)
	stream, err := startStream(command)
	if err != nil {
		return fmt.Errorf("listing %s: %w", a.Path, err)
	}
	defer stream.Close()

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var names []string
	for scanner.Scan() {
		name := scanner.Text()
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		if isEmptyZipListing(err, names) {
			return nil
		}
		return fmt.Errorf("listing %s: %w", a.Path, err)
	}

	for _, name := range names {
		if err := fn(name); err != nil {
			return err
		}
	}
	return nil
}

// emptyZipNotice is what zipinfo prints to stdout for an archive with
// no members.
const emptyZipNotice = "Empty zipfile."

// isEmptyZipListing reports whether a failed listing is really the
// entryless-archive case: exit status 1 with no output beyond the
// notice line. A genuine member named like the notice lists with exit
// status 0 and never reaches this check.
func isEmptyZipListing(err error, names []string) bool {
	var exit *exec.ExitError
	if !errors.As(err, &exit) || exit.ExitCode() != 1 {
		return false
	}
	if len(names) == 0 {
		return true
	}
	return len(names) == 1 && names[0] == emptyZipNotice
}

// zipMemberPattern escapes the wildcard metacharacters unzip applies
// to member arguments, so a listing-reported path selects exactly
// that member. Each metacharacter becomes a single-character class; a
// bare "]" is already literal once no unescaped "[" precedes it.
func zipMemberPattern(member string) string {
	if !strings.ContainsAny(member, "*?[") {
		return member
	}
	var pattern strings.Builder
	for _, r := range member {
		switch r {
		case '*', '?', '[':
			pattern.WriteByte('[')
			pattern.WriteRune(r)
			pattern.WriteByte(']')
		default:
			pattern.WriteRune(r)
		}
	}
	return pattern.String()
}

// openZipEntry streams one member's decompressed bytes via
// "unzip -p".
func (a *Archive) openZipEntry(ctx context.Context, member string) (io.ReadCloser, error) {
	command := exec.CommandContext(ctx, a.tool, "-p", a.Path, zipMemberPattern(member))
	stream, err := startStream(command)
	if err != nil {
		return nil, fmt.Errorf("streaming %s from %s: %w", member, a.Path, err)
	}
	return stream, nil
}
