// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arcnorm/arcnorm/lib/repair"
	"github.com/arcnorm/arcnorm/lib/sniff"
)

// Options is the immutable configuration of one reconciler run. It is
// assembled once, before the scan starts, from defaults, an optional
// config file, and command-line flags — in that order, later sources
// winning.
type Options struct {
	// Enabled is the set of codec families the scan may dispatch to.
	// A candidate bound to a family outside this set is skipped, not
	// failed.
	Enabled map[sniff.Format]bool

	// Overwrite allows replacing an existing restore target. Without
	// it an existing target is a skip and the target is left
	// untouched.
	Overwrite bool

	// RemoveSource deletes the compressed source after a successful
	// restore.
	RemoveSource bool

	// Verify switches the scan to a read-only integrity pass: each
	// candidate is decoded in-process into a discarding writer and
	// nothing on disk changes.
	Verify bool

	// RenamePolicy controls whether misnaming-repair failures other
	// than a name collision abort the scan.
	RenamePolicy repair.Policy
}

// DefaultOptions enables every codec family with the conservative
// policies: no overwrite, keep sources, continue past rename
// failures.
func DefaultOptions() Options {
	enabled := make(map[sniff.Format]bool, len(codecFamilies))
	for _, family := range codecFamilies {
		enabled[family] = true
	}
	return Options{
		Enabled:      enabled,
		RenamePolicy: repair.ContinueOnFailure,
	}
}

// FileConfig is the yaml policy file shape. Pointer fields distinguish
// "absent" from "explicitly false" so the file only overrides what it
// mentions.
type FileConfig struct {
	// Codecs replaces the enabled codec set when non-empty.
	Codecs []string `yaml:"codecs"`

	Overwrite    *bool `yaml:"overwrite,omitempty"`
	RemoveSource *bool `yaml:"remove_source,omitempty"`

	// RenameFailure is "continue" (default) or "fail".
	RenameFailure string `yaml:"rename_failure,omitempty"`
}

// LoadConfig reads and applies a yaml policy file on top of the given
// options. There is no config discovery: the path is always explicit.
func LoadConfig(path string, options Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return options, fmt.Errorf("reading config %s: %w", path, err)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return options, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(file.Codecs) > 0 {
		enabled, err := ParseCodecSet(file.Codecs)
		if err != nil {
			return options, fmt.Errorf("config %s: %w", path, err)
		}
		options.Enabled = enabled
	}
	if file.Overwrite != nil {
		options.Overwrite = *file.Overwrite
	}
	if file.RemoveSource != nil {
		options.RemoveSource = *file.RemoveSource
	}
	switch file.RenameFailure {
	case "", "continue":
		// Keep the current policy.
	case "fail":
		options.RenamePolicy = repair.FailOnFailure
	default:
		return options, fmt.Errorf("config %s: rename_failure must be \"continue\" or \"fail\", got %q",
			path, file.RenameFailure)
	}

	return options, nil
}

// ParseCodecSet builds an enabled-codec set from codec names. The
// names replace, not extend, whatever set was in effect.
func ParseCodecSet(names []string) (map[sniff.Format]bool, error) {
	enabled := make(map[sniff.Format]bool, len(names))
	for _, name := range names {
		family, err := parseCodec(name)
		if err != nil {
			return nil, err
		}
		enabled[family] = true
	}
	return enabled, nil
}
