// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

// Package restore walks a directory and decompresses every file whose
// (possibly repaired) extension is bound to an enabled codec. Codecs
// are external binaries invoked to decode to stdout; the output goes
// through a temp-file-then-atomic-rename so a target is never
// observable half-written. Failures are isolated per file: one corrupt
// archive never aborts the scan.
//
// Concurrent runs against the same directory are not synchronized and
// are unsupported; two runs can race on the same temp-file-then-rename
// sequence.
package restore
