// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"testing"

	"github.com/arcnorm/arcnorm/lib/sniff"
)

func TestEveryCodecFamilyHasBinding(t *testing.T) {
	for _, family := range codecFamilies {
		binding, ok := lookupBinding(family)
		if !ok {
			t.Errorf("no binding for codec family %s", family)
			continue
		}
		if binding.Tool == "" || len(binding.Args) == 0 {
			t.Errorf("binding for %s is incomplete: %+v", family, binding)
		}
	}
}

func TestContainersHaveNoBinding(t *testing.T) {
	for _, format := range []sniff.Format{
		sniff.FormatZip, sniff.FormatRar, sniff.FormatSevenZip, sniff.FormatTar, sniff.FormatPlain,
	} {
		if _, ok := lookupBinding(format); ok {
			t.Errorf("%s should not have a codec binding", format)
		}
	}
}

func TestParseCodec(t *testing.T) {
	for _, name := range []string{"gzip", "bzip2", "xz", "zstd", "lz4"} {
		family, err := parseCodec(name)
		if err != nil {
			t.Errorf("parseCodec(%q): %v", name, err)
			continue
		}
		if family.String() != name {
			t.Errorf("parseCodec(%q) = %s", name, family)
		}
	}
	if _, err := parseCodec("brotli"); err == nil {
		t.Error("parseCodec(brotli) should fail")
	}
}

func TestTargetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.gz", "notes"},
		{"notes.json.gz", "notes.json"},
		{"dump.tar.gz", "dump.tar"},
		{"dump.tgz", "dump.tar"},
		{"dump.tbz2", "dump.tar"},
		{"dump.tar.zst", "dump.tar"},
		{"dump.tar.lz4", "dump.tar"},
		{"a/b/c.xz", "a/b/c"},
	}
	for _, test := range tests {
		info, ok := sniff.RecognizedSuffix(test.path)
		if !ok {
			t.Errorf("RecognizedSuffix(%q) not recognized", test.path)
			continue
		}
		if got := targetName(test.path, info); got != test.want {
			t.Errorf("targetName(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}
