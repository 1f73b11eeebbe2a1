// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/arcnorm/arcnorm/cmd/arcnorm/cli"
	"github.com/arcnorm/arcnorm/lib/archive"
	"github.com/arcnorm/arcnorm/lib/digest"
	"github.com/arcnorm/arcnorm/lib/manifest"
)

func manifestCommand() *cli.Command {
	var (
		output   string
		hashName string
		quiet    bool
	)

	return &cli.Command{
		Name:    "manifest",
		Summary: "Write a sorted digest listing of an archive's contents",
		Description: `Enumerate the regular members of a 7z, tar, or zip archive and stream
each member's decompressed bytes through a digest, without extracting
anything to disk. The output is one "<digest>  <path>" line per member,
sorted by path. The build is all-or-nothing: if any member cannot be
streamed, no manifest is written.`,
		Usage: "arcnorm manifest [flags] <archive>",
		Examples: []cli.Example{
			{
				Description: "Manifest a 7z archive next to itself",
				Command:     "arcnorm manifest backup.7z",
			},
			{
				Description: "BLAKE3 digests to an explicit output file",
				Command:     "arcnorm manifest --hash blake3 --output /tmp/listing data.tar.zst",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("manifest", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "",
				"manifest file (default: archive path with its final suffix replaced by the algorithm name)")
			flagSet.StringVar(&hashName, "hash", "sha256", "digest algorithm: sha256 or blake3")
			flagSet.BoolVar(&quiet, "quiet", false, "only log warnings and errors")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one archive argument, got %d", len(args))
			}
			archivePath := args[0]

			algorithm, err := digest.ParseAlgorithm(hashName)
			if err != nil {
				return err
			}
			if output == "" {
				output = manifest.DefaultOutputPath(archivePath, algorithm)
			}

			logger := newLogger(quiet)
			container, err := archive.Open(archivePath, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			builder := &manifest.Builder{Container: container, Algorithm: algorithm, Logger: logger}
			return builder.BuildFile(ctx, output)
		},
	}
}
