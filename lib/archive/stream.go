// Copyright 2026 The Arcnorm Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// processStream is an io.ReadCloser over a child process's stdout.
// The child is reaped on every exit path: a clean read to EOF waits
// for the process and surfaces its exit status, and an early Close
// tears the pipe down and still reaps. A non-zero exit is reported as
// a read error, never silently swallowed — a truncated member stream
// must fail the caller.
type processStream struct {
	command *exec.Cmd
	stdout  io.ReadCloser
	stderr  *bytes.Buffer
	waited  bool
	waitErr error
}

// startStream starts the command with a stdout pipe and captured
// stderr.
func startStream(command *exec.Cmd) (*processStream, error) {
	var stderr bytes.Buffer
	command.Stderr = &stderr

	stdout, err := command.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	if err := command.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", command.Path, err)
	}
	return &processStream{command: command, stdout: stdout, stderr: &stderr}, nil
}

func (s *processStream) Read(p []byte) (int, error) {
	n, err := s.stdout.Read(p)
	if err == io.EOF {
		if waitErr := s.wait(); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}

// Close releases the pipe and reaps the child. Closing before EOF
// kills the stream from the child's perspective (EPIPE); the exit
// status of an interrupted child is deliberately not treated as an
// error here, because Close on an error path must not mask the
// original failure.
func (s *processStream) Close() error {
	s.stdout.Close()
	s.wait()
	return nil
}

// wait reaps the child exactly once and caches the result.
func (s *processStream) wait() error {
	if s.waited {
		return s.waitErr
	}
	s.waited = true
	if err := s.command.Wait(); err != nil {
		s.waitErr = fmt.Errorf("%s: %w (stderr: %s)",
			s.command.Path, err, strings.TrimSpace(s.stderr.String()))
	}
	return s.waitErr
}
