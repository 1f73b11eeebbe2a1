// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"strings"
	"testing"
)

func TestSumSHA256KnownVector(t *testing.T) {
	sum, err := SHA256.Sum(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if sum != want {
		t.Errorf("Sum(abc) = %s, want %s", sum, want)
	}
}

func TestSumEmptyInput(t *testing.T) {
	sum, err := SHA256.Sum(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if sum != want {
		t.Errorf("Sum(empty) = %s, want %s", sum, want)
	}
}

func TestSumBlake3(t *testing.T) {
	sum, err := BLAKE3.Sum(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if len(sum) != 2*BLAKE3.Size() {
		t.Errorf("hex length = %d, want %d", len(sum), 2*BLAKE3.Size())
	}
	if sum == strings.ToUpper(sum) {
		t.Error("digest should be lowercase hex")
	}

	// Deterministic across accumulators.
	again, err := BLAKE3.Sum(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if sum != again {
		t.Errorf("Sum is not deterministic: %s vs %s", sum, again)
	}
}

func TestSizes(t *testing.T) {
	if got := SHA256.Size(); got != 32 {
		t.Errorf("SHA256.Size() = %d, want 32", got)
	}
	if got := BLAKE3.Size(); got != 32 {
		t.Errorf("BLAKE3.Size() = %d, want 32", got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for name, want := range map[string]Algorithm{
		"sha256": SHA256,
		"blake3": BLAKE3,
	} {
		got, err := ParseAlgorithm(name)
		if err != nil || got != want {
			t.Errorf("ParseAlgorithm(%q) = %v, %v; want %v", name, got, err, want)
		}
		if got.String() != name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), name)
		}
	}
	if _, err := ParseAlgorithm("md5"); err == nil {
		t.Error("ParseAlgorithm(md5) should fail")
	}
}
