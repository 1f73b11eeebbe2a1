// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package sniff identifies file formats from their leading bytes and
// from their name suffixes, independently of each other. The two views
// deliberately disagree for misnamed files; lib/repair reconciles them.
//
// Sniffing never consults the file name. Resolution never consults the
// file content. Both are pure functions over their inputs.
package sniff
