// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestWantsVersion(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--version"}, true},
		{[]string{"restore", "--version"}, true},
		{[]string{"restore", "."}, false},

		// A positional argument after "--" is not a flag, even when
		// it is spelled like one.
		{[]string{"inspect", "--", "--version"}, false},
		{[]string{"--version", "--", "x"}, true},
	}
	for _, test := range tests {
		if got := wantsVersion(test.args); got != test.want {
			t.Errorf("wantsVersion(%q) = %v, want %v", test.args, got, test.want)
		}
	}
}
