// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package repair reconciles a file's sniffed byte format with the
// format its name claims. When the two disagree it renames the file to
// the name matching the actual content, refusing (never overwriting)
// when the corrected name is already taken. Repairing a
// correctly-named file is a no-op, so the operation is idempotent.
package repair

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/arcnorm/arcnorm/lib/sniff"
)

// Outcome classifies the result of a repair attempt.
type Outcome uint8

const (
	// Unchanged means the name already matched the content (or there
	// was nothing safe to do) and the file was left alone.
	Unchanged Outcome = iota

	// Renamed means the file now lives at Result.Path.
	Renamed

	// Refused means a corrected name was computed but not applied;
	// the caller must keep using the original name.
	Refused
)

// Result reports what the repairer did to one file.
type Result struct {
	Outcome Outcome

	// Path is the name to use from here on: the new name after a
	// rename, the original name otherwise.
	Path string

	// Sniffed and Expected are the two format views that were
	// compared.
	Sniffed  sniff.Format
	Expected sniff.Format

	// Reason explains a Refused outcome.
	Reason string
}

// Policy decides how rename failures other than a name collision are
// handled. A collision is always a Refused outcome, never an error.
type Policy uint8

const (
	// ContinueOnFailure logs the failure and keeps the original name.
	// This matches the historical behavior of the tool.
	ContinueOnFailure Policy = iota

	// FailOnFailure surfaces the failure to the caller.
	FailOnFailure
)

// Repairer applies misnaming repair with a fixed policy and logger.
type Repairer struct {
	Policy Policy
	Logger *slog.Logger
}

// Repair sniffs the file at path, resolves the name's expected
// format, and renames the file when they disagree. The returned
// Result.Path is always the name the caller should proceed with.
func (r *Repairer) Repair(path string) (Result, error) {
	unchanged := Result{Outcome: Unchanged, Path: path}

	sniffed, err := sniff.DetectFile(path)
	if err != nil {
		if r.Policy == FailOnFailure {
			return unchanged, err
		}
		r.Logger.Warn("cannot sniff file, keeping name", "path", path, "error", err)
		return unchanged, nil
	}
	unchanged.Sniffed = sniffed

	info, hasSuffix := sniff.RecognizedSuffix(path)
	if hasSuffix {
		unchanged.Expected = info.Format
	}

	// Correctly named, or a plain file with no claim to check.
	if !hasSuffix && sniffed == sniff.FormatPlain {
		return unchanged, nil
	}
	if hasSuffix && sniffed == info.Format {
		return unchanged, nil
	}

	// The views disagree. This is always logged, never silent.
	r.Logger.Warn("file name does not match content",
		"path", path, "sniffed", sniffed.String(), "claimed", claimed(info, hasSuffix))

	// A plain file wearing a codec suffix: stripping the suffix would
	// be guessing, so leave the name alone.
	if sniffed == sniff.FormatPlain {
		return unchanged, nil
	}

	corrected := correctedName(path, sniffed, info, hasSuffix)
	if corrected == path {
		return unchanged, nil
	}

	if _, err := os.Lstat(corrected); err == nil {
		r.Logger.Warn("corrected name already exists, keeping original",
			"path", path, "corrected", corrected)
		return Result{
			Outcome:  Refused,
			Path:     path,
			Sniffed:  sniffed,
			Expected: unchanged.Expected,
			Reason:   fmt.Sprintf("target %s already exists", corrected),
		}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		if r.Policy == FailOnFailure {
			return unchanged, fmt.Errorf("checking corrected name %s: %w", corrected, err)
		}
		r.Logger.Warn("cannot check corrected name, keeping original",
			"path", path, "corrected", corrected, "error", err)
		return unchanged, nil
	}

	if err := os.Rename(path, corrected); err != nil {
		if r.Policy == FailOnFailure {
			return unchanged, fmt.Errorf("renaming %s to %s: %w", path, corrected, err)
		}
		r.Logger.Warn("rename failed, keeping original",
			"path", path, "corrected", corrected, "error", err)
		return Result{
			Outcome:  Refused,
			Path:     path,
			Sniffed:  sniffed,
			Expected: unchanged.Expected,
			Reason:   err.Error(),
		}, nil
	}

	r.Logger.Info("renamed misnamed file", "from", path, "to", corrected)
	return Result{
		Outcome:  Renamed,
		Path:     corrected,
		Sniffed:  sniffed,
		Expected: unchanged.Expected,
	}, nil
}

// correctedName computes the name matching the sniffed format:
// replace the recognized trailing suffix (if any) with the sniffed
// format's suffix, keeping the base name and any unrelated leading
// suffixes. A tar-implying suffix keeps its ".tar" component, since
// the stream inside is still a tar.
func correctedName(path string, sniffed sniff.Format, info sniff.SuffixInfo, hasSuffix bool) string {
	if !hasSuffix {
		return path + sniffed.Suffix()
	}

	base := path[:len(path)-len(info.Suffix)]
	if info.ImpliesTar {
		if sniffed == sniff.FormatTar {
			return base + ".tar"
		}
		return base + ".tar" + sniffed.Suffix()
	}
	return base + sniffed.Suffix()
}

// claimed renders the expected-format side of the mismatch log line.
func claimed(info sniff.SuffixInfo, hasSuffix bool) string {
	if !hasSuffix {
		return "none"
	}
	return info.Format.String()
}
