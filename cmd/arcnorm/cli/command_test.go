// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesToSubcommand(t *testing.T) {
	var gotArgs []string
	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{Name: "scan", Run: func(args []string) error {
				gotArgs = args
				return nil
			}},
		},
	}

	if err := root.Execute([]string{"scan", "some/dir"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "some/dir" {
		t.Errorf("args = %q, want [some/dir]", gotArgs)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var verbose bool
	command := &Command{
		Name: "scan",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("scan", pflag.ContinueOnError)
			flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--verbose", "target"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !verbose {
		t.Error("--verbose not applied")
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "tool",
		Subcommands: []*Command{
			{Name: "restore", Run: func([]string) error { return nil }},
			{Name: "manifest", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"restroe"})
	if err == nil {
		t.Fatal("Execute should fail for an unknown command")
	}
	if !strings.Contains(err.Error(), `"restore"`) {
		t.Errorf("error should suggest restore: %v", err)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "scan",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("scan", pflag.ContinueOnError)
			flags.Bool("overwrite", false, "replace existing targets")
			return flags
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--overwrite"})
	if err != nil {
		t.Fatalf("Execute with valid flag: %v", err)
	}

	err = command.Execute([]string{"--overwite"})
	if err == nil {
		t.Fatal("Execute should fail for an unknown flag")
	}
	if !strings.Contains(err.Error(), "--overwrite") {
		t.Errorf("error should suggest --overwrite: %v", err)
	}
}

func TestClosestCommandRespectsThreshold(t *testing.T) {
	commands := []*Command{{Name: "restore"}, {Name: "inspect"}}
	if got := closestCommand("restroe", commands); got != "restore" {
		t.Errorf("closestCommand(restroe) = %q, want restore", got)
	}
	if got := closestCommand("zzzzzzzzzz", commands); got != "" {
		t.Errorf("closestCommand(zzzzzzzzzz) = %q, want none", got)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"restore", "restroe", 2},
	}
	for _, test := range tests {
		if got := editDistance(test.a, test.b); got != test.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
