// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the arcnorm command tree: restore,
// manifest, inspect, version.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/arcnorm/arcnorm/cmd/arcnorm/cli"
	"github.com/arcnorm/arcnorm/lib/version"
)

// Root returns the top-level arcnorm command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "arcnorm",
		Summary: "Archive integrity and format normalization tools",
		Description: `arcnorm repairs misnamed compressed files, restores them to their
uncompressed form, and builds verifiable digest manifests of archive
contents without extracting to disk.`,
		Subcommands: []*cli.Command{
			restoreCommand(),
			manifestCommand(),
			inspectCommand(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Printf("arcnorm %s\n", version.Full())
			return nil
		},
	}
}

// newLogger builds the logger every command shares: text on stderr,
// Info by default, Warn and above under --quiet, Debug when
// ARCNORM_DEBUG is set.
func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	if os.Getenv("ARCNORM_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
