// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command-tree framework behind the arcnorm
// binary: named subcommands with pflag flag sets, structured help
// output, and typo suggestions for unknown commands and flags.
package cli
