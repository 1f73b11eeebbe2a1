// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError carries an explicit process exit code out of a command.
// The main function checks for it and exits with the code without
// printing a redundant error line — the command has already said what
// it needed to say.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the code for main's interface check.
func (e *ExitError) ExitCode() int {
	return e.Code
}
