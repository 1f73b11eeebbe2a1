// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/arcnorm/arcnorm/cmd/arcnorm/cli"
	"github.com/arcnorm/arcnorm/lib/sniff"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:    "inspect",
		Summary: "Report the sniffed format of files",
		Description: `Sniff each file's leading bytes and print the detected format,
ignoring the file name entirely. Gzip files additionally get their
member header fields (mtime, OS, flags, stored name, comment).`,
		Usage: "arcnorm inspect <file>...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("expected at least one file argument")
			}

			for _, path := range args {
				format, err := sniff.DetectFile(path)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", path, format)

				if format != sniff.FormatGzip {
					continue
				}
				header, err := sniff.ReadGzipHeaderFile(path)
				if err != nil {
					return err
				}
				for _, line := range strings.Split(strings.TrimRight(header.Summary(), "\n"), "\n") {
					fmt.Printf("  %s\n", line)
				}
			}
			return nil
		},
	}
}
