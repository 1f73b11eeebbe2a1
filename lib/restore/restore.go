// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package restore

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arcnorm/arcnorm/lib/repair"
	"github.com/arcnorm/arcnorm/lib/sniff"
)

// ToolMissingError reports a required external decoder that is not on
// PATH. It is the only fatal pre-flight condition.
type ToolMissingError struct {
	Tool  string
	Codec sniff.Format
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("required tool %q for codec %s not found in PATH", e.Tool, e.Codec)
}

// Summary counts what one scan did. Per-file failures are counted
// here and logged; they never abort the scan and never change the
// exit code.
type Summary struct {
	Restored int
	Renamed  int
	Skipped  int
	Failed   int
	Verified int
	Corrupt  int
}

// Reconciler runs the decompression scan. Construct with fully merged
// Options; the reconciler itself never mutates them.
type Reconciler struct {
	Options Options
	Logger  *slog.Logger
}

// Preflight checks that every enabled codec's external tool is
// resolvable. Called once before a scan; a missing tool is fatal.
// Verify mode decodes in-process and needs no external tools.
func (r *Reconciler) Preflight() error {
	if r.Options.Verify {
		return nil
	}
	for _, family := range codecFamilies {
		if !r.Options.Enabled[family] {
			continue
		}
		binding, ok := lookupBinding(family)
		if !ok {
			continue
		}
		if _, err := exec.LookPath(binding.Tool); err != nil {
			return &ToolMissingError{Tool: binding.Tool, Codec: family}
		}
	}
	return nil
}

// Run walks root and processes every regular file. The walk order is
// whatever the filesystem reports; nothing downstream may depend on
// it. Cancellation is checked between files, never mid-file, so the
// atomicity guarantees of a single restore hold on cancellation too.
func (r *Reconciler) Run(ctx context.Context, root string) (Summary, error) {
	var summary Summary

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("scanning %s: %w", root, err)
			}
			r.Logger.Warn("cannot access path, skipping", "path", path, "error", err)
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.processFile(ctx, path, &summary)
	})
	if walkErr != nil {
		return summary, walkErr
	}

	if summary == (Summary{}) {
		r.Logger.Info("no matching files found", "root", root)
	}
	return summary, nil
}

// processFile drives one candidate through the state machine:
// misnaming repair, dispatch, restore. Only a fatal repair failure
// (under the fail policy) or cancellation propagates an error; every
// other failure is recorded in the summary and the scan continues.
func (r *Reconciler) processFile(ctx context.Context, path string, summary *Summary) error {
	repairer := &repair.Repairer{Policy: r.Options.RenamePolicy, Logger: r.Logger}
	result, err := repairer.Repair(path)
	if err != nil {
		return err
	}
	if result.Outcome == repair.Renamed {
		summary.Renamed++
	}
	path = result.Path

	info, hasSuffix := sniff.RecognizedSuffix(path)
	if !hasSuffix {
		// A name with an extension we do not know is worth a log
		// line; extensionless files (the bulk of any tree) are not.
		if ext := filepath.Ext(path); ext != "" && ext != "." {
			r.Logger.Info("skipping: unknown extension", "path", path, "extension", ext)
			summary.Skipped++
		}
		return nil
	}

	switch info.Format {
	case sniff.FormatTar:
		r.Logger.Info("skipping: already an uncompressed tar", "path", path)
		summary.Skipped++
		return nil
	case sniff.FormatZip, sniff.FormatRar, sniff.FormatSevenZip:
		r.Logger.Info("skipping: container format, not a stream codec", "path", path, "format", info.Format.String())
		summary.Skipped++
		return nil
	}

	if !r.Options.Enabled[info.Format] {
		r.Logger.Info("skipping: codec disabled", "path", path, "codec", info.Format.String())
		summary.Skipped++
		return nil
	}

	binding, ok := lookupBinding(info.Format)
	if !ok {
		r.Logger.Info("skipping: no decoder bound", "path", path, "codec", info.Format.String())
		summary.Skipped++
		return nil
	}

	if r.Options.Verify {
		if err := VerifyFile(info.Format, path); err != nil {
			r.Logger.Error("stream is corrupt", "path", path, "error", err)
			summary.Corrupt++
		} else {
			r.Logger.Info("stream verified", "path", path, "codec", info.Format.String())
			summary.Verified++
		}
		return nil
	}

	target := targetName(path, info)
	if _, err := os.Lstat(target); err == nil && !r.Options.Overwrite {
		r.Logger.Info("skipping: target exists", "path", path, "target", target)
		summary.Skipped++
		return nil
	}

	if err := r.decode(ctx, binding, path, target); err != nil {
		r.Logger.Error("restore failed", "path", path, "error", err)
		summary.Failed++
		return nil
	}
	summary.Restored++
	r.Logger.Info("restored", "source", path, "target", target)

	if r.Options.RemoveSource {
		if err := os.Remove(path); err != nil {
			r.Logger.Error("cannot remove source after restore", "path", path, "error", err)
			summary.Failed++
		}
	}
	return nil
}

// decode runs the external codec with its stdout bound to a temp file
// next to the target, copies the source's modification time onto the
// temp file, and atomically renames it into place. On any failure the
// temp file is deleted; the target is never observable half-written.
func (r *Reconciler) decode(ctx context.Context, binding Binding, source, target string) (err error) {
	sourceInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	temp := fmt.Sprintf("%s.arcnorm-%d.tmp", target, os.Getpid())
	tempFile, err := os.OpenFile(temp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(temp)
		}
	}()

	args := append(append([]string{}, binding.Args...), source)
	command := exec.CommandContext(ctx, binding.Tool, args...)
	command.Stdout = tempFile
	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err = command.Run(); err != nil {
		return fmt.Errorf("%s %s: %w (stderr: %s)",
			binding.Tool, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	// The restored file inherits the compressed file's mtime, set
	// before the rename so the target never carries a transient
	// timestamp.
	modTime := sourceInfo.ModTime()
	if err = os.Chtimes(temp, modTime, modTime); err != nil {
		return fmt.Errorf("copying modification time: %w", err)
	}
	if err = os.Rename(temp, target); err != nil {
		return fmt.Errorf("renaming temp into place: %w", err)
	}
	return nil
}
