// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcnorm/arcnorm/lib/repair"
	"github.com/arcnorm/arcnorm/lib/sniff"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultOptionsEnableAllCodecs(t *testing.T) {
	options := DefaultOptions()
	for _, family := range codecFamilies {
		if !options.Enabled[family] {
			t.Errorf("codec %s not enabled by default", family)
		}
	}
	if options.Overwrite || options.RemoveSource || options.Verify {
		t.Errorf("defaults should be conservative: %+v", options)
	}
	if options.RenamePolicy != repair.ContinueOnFailure {
		t.Errorf("RenamePolicy = %v, want ContinueOnFailure", options.RenamePolicy)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
codecs: [gzip, zstd]
overwrite: true
remove_source: true
rename_failure: fail
`)

	options, err := LoadConfig(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !options.Enabled[sniff.FormatGzip] || !options.Enabled[sniff.FormatZstd] {
		t.Error("gzip and zstd should be enabled")
	}
	if options.Enabled[sniff.FormatXZ] || options.Enabled[sniff.FormatBzip2] || options.Enabled[sniff.FormatLZ4] {
		t.Error("codecs outside the configured set should be disabled")
	}
	if !options.Overwrite || !options.RemoveSource {
		t.Errorf("overwrite/remove_source not applied: %+v", options)
	}
	if options.RenamePolicy != repair.FailOnFailure {
		t.Errorf("RenamePolicy = %v, want FailOnFailure", options.RenamePolicy)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "overwrite: true\n")

	options, err := LoadConfig(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !options.Overwrite {
		t.Error("overwrite not applied")
	}
	for _, family := range codecFamilies {
		if !options.Enabled[family] {
			t.Errorf("codec %s lost its default enablement", family)
		}
	}
	if options.RemoveSource {
		t.Error("remove_source should keep its default")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for name, content := range map[string]string{
		"bad codec":         "codecs: [brotli]\n",
		"bad rename policy": "rename_failure: explode\n",
		"not yaml":          "{{{{\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			if _, err := LoadConfig(path, DefaultOptions()); err == nil {
				t.Error("LoadConfig should fail")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), DefaultOptions()); err == nil {
		t.Error("LoadConfig should fail for a missing file")
	}
}

func TestParseCodecSetReplaces(t *testing.T) {
	enabled, err := ParseCodecSet([]string{"xz"})
	if err != nil {
		t.Fatalf("ParseCodecSet: %v", err)
	}
	if !enabled[sniff.FormatXZ] || len(enabled) != 1 {
		t.Errorf("ParseCodecSet([xz]) = %v, want only xz", enabled)
	}
}
