// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides the hash algorithms used for manifest
// entries. Both produce fixed-length lowercase hex strings: sha256
// output is checkable with sha256sum -c, blake3 is the faster option
// for large archives.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"
)

// Algorithm identifies a manifest digest algorithm.
type Algorithm uint8

const (
	SHA256 Algorithm = iota
	BLAKE3
)

// String returns the lowercase algorithm name, which is also the
// default manifest file suffix (without the dot).
func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case BLAKE3:
		return "blake3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// ParseAlgorithm parses an algorithm name as given on the command
// line.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "sha256":
		return SHA256, nil
	case "blake3":
		return BLAKE3, nil
	default:
		return 0, fmt.Errorf("unknown digest algorithm %q (supported: sha256, blake3)", name)
	}
}

// New returns a fresh hash accumulator for the algorithm.
func (a Algorithm) New() hash.Hash {
	switch a {
	case BLAKE3:
		return blake3.New()
	default:
		return sha256.New()
	}
}

// Size returns the digest length in bytes. The hex form is twice
// this.
func (a Algorithm) Size() int {
	return a.New().Size()
}

// Sum streams r through a fresh accumulator and returns the
// hex-encoded digest.
func (a Algorithm) Sum(r io.Reader) (string, error) {
	hasher := a.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("hashing stream: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
