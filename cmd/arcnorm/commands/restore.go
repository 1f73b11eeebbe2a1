// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/arcnorm/arcnorm/cmd/arcnorm/cli"
	"github.com/arcnorm/arcnorm/lib/restore"
)

func restoreCommand() *cli.Command {
	var (
		flagSet      *pflag.FlagSet
		codecs       []string
		removeSource bool
		overwrite    bool
		verify       bool
		quiet        bool
		configPath   string
	)

	return &cli.Command{
		Name:    "restore",
		Summary: "Decompress recognized files in a directory tree",
		Description: `Walk a directory and restore every file whose extension is bound to an
enabled codec, repairing misnamed files first by sniffing their leading
bytes. Restores go through a temp file and an atomic rename; a failure
on one file never aborts the scan.`,
		Usage: "arcnorm restore [flags] <directory>",
		Examples: []cli.Example{
			{
				Description: "Restore everything under the current directory",
				Command:     "arcnorm restore .",
			},
			{
				Description: "Only gzip and zstd, deleting sources after success",
				Command:     "arcnorm restore --codec gzip,zstd --remove /data/dump",
			},
			{
				Description: "Check stream integrity without writing anything",
				Command:     "arcnorm restore --verify /data/dump",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("restore", pflag.ContinueOnError)
			flagSet.StringSliceVar(&codecs, "codec", nil,
				"codec to enable (repeatable or comma-separated; replaces the default set)")
			flagSet.BoolVar(&removeSource, "remove", false, "delete the compressed source after a successful restore")
			flagSet.BoolVar(&overwrite, "overwrite", false, "replace existing restore targets")
			flagSet.BoolVar(&verify, "verify", false, "decode in-process to check integrity; write nothing")
			flagSet.BoolVar(&quiet, "quiet", false, "only log warnings and errors")
			flagSet.StringVar(&configPath, "config", "", "yaml policy file")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one directory argument, got %d", len(args))
			}
			root := args[0]

			options := restore.DefaultOptions()
			if configPath != "" {
				var err error
				options, err = restore.LoadConfig(configPath, options)
				if err != nil {
					return err
				}
			}
			if flagSet.Changed("codec") {
				enabled, err := restore.ParseCodecSet(codecs)
				if err != nil {
					return err
				}
				options.Enabled = enabled
			}
			if flagSet.Changed("remove") {
				options.RemoveSource = removeSource
			}
			if flagSet.Changed("overwrite") {
				options.Overwrite = overwrite
			}
			options.Verify = verify

			logger := newLogger(quiet)
			reconciler := &restore.Reconciler{Options: options, Logger: logger}
			if err := reconciler.Preflight(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := reconciler.Run(ctx, root)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("scan interrupted")
					return &cli.ExitError{Code: 130}
				}
				return err
			}

			logger.Info("scan complete",
				"restored", summary.Restored,
				"renamed", summary.Renamed,
				"skipped", summary.Skipped,
				"failed", summary.Failed,
				"verified", summary.Verified,
				"corrupt", summary.Corrupt)
			return nil
		},
	}
}
