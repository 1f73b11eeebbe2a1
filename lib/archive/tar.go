// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// tarEntries lists member names with "tar -tf". The tar tool
// decompresses .tar.gz / .tgz and friends transparently, which is why
// compressed-tar names classify as tar. Empty lines and names ending
// in a path separator (directory markers) are skipped.
func (a *Archive) tarEntries(ctx context.Context, fn func(member string) error) error {
	command := exec.CommandContext(ctx, a.tool, "-tf", a.Path)
	stream, err := startStream(command)
	if err != nil {
		return fmt.Errorf("listing %s: %w", a.Path, err)
	}
	defer stream.Close()

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		name := scanner.Text()
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		if err := fn(name); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("listing %s: %w", a.Path, err)
	}
	return nil
}
