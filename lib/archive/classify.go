// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/arcnorm/arcnorm/lib/sniff"
)

// Type is the container kind of an archive, which selects the listing
// and extraction backend.
type Type uint8

const (
	TypeSevenZip Type = iota
	TypeTar
	TypeZip
)

// String returns the lowercase container name.
func (t Type) String() string {
	switch t {
	case TypeSevenZip:
		return "7z"
	case TypeTar:
		return "tar"
	case TypeZip:
		return "zip"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Classify maps an archive file name to its container type,
// case-insensitively. Any compressed-tar spelling still classifies as
// tar: the tar backend decompresses transparently. Unrecognized names
// default to 7z with a warning — the 7z backend can frequently open
// other container formats anyway.
func Classify(name string, logger *slog.Logger) Type {
	base := strings.ToLower(path.Base(name))

	switch {
	case strings.HasSuffix(base, ".7z"):
		return TypeSevenZip
	case strings.HasSuffix(base, ".zip"):
		return TypeZip
	case strings.HasSuffix(base, ".tar"):
		return TypeTar
	}

	if info, ok := sniff.RecognizedSuffix(base); ok && info.ImpliesTar {
		return TypeTar
	}

	logger.Warn("unrecognized archive name, assuming 7z", "archive", name)
	return TypeSevenZip
}
