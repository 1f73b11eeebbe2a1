// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package sniff

import (
	"path"
	"strings"
)

// SuffixInfo describes a recognized trailing suffix of a file name.
type SuffixInfo struct {
	// Suffix is the matched suffix, lowercased, including the leading
	// dot. For compound forms this is the full chain (".tar.gz"), for
	// shortcuts the shortcut itself (".tgz").
	Suffix string

	// Format is the codec or container the suffix claims.
	Format Format

	// ImpliesTar is true when the suffix denotes a codec wrapped
	// around a tar stream (".tar.gz", ".tgz", ...). Decoding such a
	// file yields a ".tar", not a bare file.
	ImpliesTar bool
}

// compoundSuffixes are the tar-plus-codec chains. Matched before
// anything else so ".tar.gz" resolves to gzip rather than to a bare
// ".gz" with a ".tar" base.
var compoundSuffixes = []SuffixInfo{
	{".tar.gz", FormatGzip, true},
	{".tar.bz2", FormatBzip2, true},
	{".tar.xz", FormatXZ, true},
	{".tar.zst", FormatZstd, true},
	{".tar.lz4", FormatLZ4, true},
}

// shortcutSuffixes are the single-token spellings of the compound
// forms, the way each codec's own tooling abbreviates a compressed
// tar stream.
var shortcutSuffixes = []SuffixInfo{
	{".tgz", FormatGzip, true},
	{".tbz2", FormatBzip2, true},
	{".tbz", FormatBzip2, true},
	{".txz", FormatXZ, true},
	{".tzst", FormatZstd, true},
}

// singleSuffixes map one trailing extension to its format. The three
// magic-only container extensions map to themselves.
var singleSuffixes = []SuffixInfo{
	{".gz", FormatGzip, false},
	{".bz2", FormatBzip2, false},
	{".xz", FormatXZ, false},
	{".zst", FormatZstd, false},
	{".lz4", FormatLZ4, false},
	{".zip", FormatZip, false},
	{".rar", FormatRar, false},
	{".7z", FormatSevenZip, false},
	{".tar", FormatTar, false},
}

// RecognizedSuffix returns the longest recognized trailing suffix of
// the file name, or ok=false when the name carries none. Matching is
// case-insensitive and considers only the base name.
func RecognizedSuffix(name string) (SuffixInfo, bool) {
	base := strings.ToLower(path.Base(name))
	for _, table := range [][]SuffixInfo{compoundSuffixes, shortcutSuffixes, singleSuffixes} {
		for _, info := range table {
			if strings.HasSuffix(base, info.Suffix) && len(base) > len(info.Suffix) {
				return info, true
			}
		}
	}
	return SuffixInfo{}, false
}

// ExpectedFormat resolves a file name's suffix chain to the format the
// name claims. The second return is false when no recognized suffix is
// present ("unknown" in the resolution sense, which is distinct from a
// sniffed FormatPlain).
func ExpectedFormat(name string) (Format, bool) {
	info, ok := RecognizedSuffix(name)
	if !ok {
		return FormatPlain, false
	}
	return info.Format, true
}
