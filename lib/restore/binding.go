// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"fmt"

	"github.com/arcnorm/arcnorm/lib/sniff"
)

// Binding maps one codec family to its external decoder. The argv
// decodes the file named by the final argument to stdout.
type Binding struct {
	// Format is the codec family the binding serves.
	Format sniff.Format

	// Tool is the external binary name, resolved via PATH during
	// pre-flight.
	Tool string

	// Args are the decode-to-stdout arguments, before the source
	// path.
	Args []string
}

// bindings is the full dispatch table, one entry per codec family.
// Container formats (zip, rar, 7z) and bare tar deliberately have no
// entry — they are skip cases, not decode cases.
var bindings = map[sniff.Format]Binding{
	sniff.FormatGzip:  {sniff.FormatGzip, "gzip", []string{"-dc"}},
	sniff.FormatBzip2: {sniff.FormatBzip2, "bzip2", []string{"-dc"}},
	sniff.FormatXZ:    {sniff.FormatXZ, "xz", []string{"-dc"}},
	sniff.FormatZstd:  {sniff.FormatZstd, "zstd", []string{"-dc"}},
	sniff.FormatLZ4:   {sniff.FormatLZ4, "lz4", []string{"-dc"}},
}

// codecFamilies lists every bound codec family. This is the default
// enabled set.
var codecFamilies = []sniff.Format{
	sniff.FormatGzip,
	sniff.FormatBzip2,
	sniff.FormatXZ,
	sniff.FormatZstd,
	sniff.FormatLZ4,
}

// lookupBinding returns the binding for a codec family.
func lookupBinding(format sniff.Format) (Binding, bool) {
	binding, ok := bindings[format]
	return binding, ok
}

// parseCodec maps a codec name from the command line or config file
// to its family tag.
func parseCodec(name string) (sniff.Format, error) {
	for _, family := range codecFamilies {
		if name == family.String() {
			return family, nil
		}
	}
	return sniff.FormatPlain, fmt.Errorf("unknown codec %q (supported: gzip, bzip2, xz, zstd, lz4)", name)
}

// targetName computes the restored output name for a source file with
// the given recognized suffix: codec suffixes are stripped, and
// tar-implying suffixes are replaced by ".tar" so the decoded tar
// stream keeps a truthful name.
func targetName(path string, info sniff.SuffixInfo) string {
	base := path[:len(path)-len(info.Suffix)]
	if info.ImpliesTar {
		return base + ".tar"
	}
	return base
}
