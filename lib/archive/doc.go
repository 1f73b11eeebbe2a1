// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive enumerates the regular members of 7z, tar, and zip
// containers and opens per-member decompressed streams without ever
// staging extracted bytes on disk. Containers are read through their
// native command-line tools; for 7z a pure-Go reader stands in when no
// 7z binary is installed.
package archive
