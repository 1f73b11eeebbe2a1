// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/arcnorm/arcnorm/cmd/arcnorm/commands"
	"github.com/arcnorm/arcnorm/lib/version"
)

// wantsVersion reports whether --version appears before any "--"
// terminator. A positional argument after "--" is never a flag, even
// when it is spelled like one.
func wantsVersion(args []string) bool {
	for _, argument := range args {
		if argument == "--" {
			return false
		}
		if argument == "--version" {
			return true
		}
	}
	return false
}

func main() {
	// Handle --version before dispatch, in any position.
	if wantsVersion(os.Args[1:]) {
		fmt.Printf("arcnorm %s\n", version.Info())
		return
	}

	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		// Commands that manage their own output return an ExitError
		// with the desired code; don't print a redundant error line.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		// Fatal conditions (missing tool, bad argument, unreadable
		// archive, entry stream failure) share one exit code.
		os.Exit(2)
	}
}
