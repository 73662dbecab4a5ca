// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner runs the external commands that regenerate a view's
// data files.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// A Runner runs one command line to completion.
type Runner interface {
	// Run blocks until command exits. A command that starts but
	// exits unsuccessfully returns its Result along with an
	// *ExitError.
	Run(command string) (Result, error)
}

// Func adapts a function to the Runner interface.
type Func func(command string) (Result, error)

func (f Func) Run(command string) (Result, error) {
	return f(command)
}

// Result is the outcome of a command that was started.
type Result struct {
	Args       []string
	ExitStatus int

	// Output is the interleaved stdout and stderr.
	Output []byte
}

// ExitError reports a command that exited with a non-zero status or
// was killed by a signal.
type ExitError struct {
	Args   []string
	Status int // -1 if killed by a signal
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v", shellquote.Join(e.Args...), e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exec runs commands as child processes. The command line is split
// into words using shell quoting rules, but no shell is involved.
type Exec struct {
	// Dir is the working directory of the commands. If empty,
	// they run in the current directory.
	Dir string

	// Env, if non-nil, is the environment of the commands.
	Env []string
}

func (e *Exec) Run(command string) (Result, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return Result{}, fmt.Errorf("parsing command %q: %w", command, err)
	}
	if len(args) == 0 {
		return Result{}, errors.New("empty command")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = e.Dir
	cmd.Env = e.Env

	res := Result{Args: args}
	res.Output, err = combinedOutput(cmd)
	if err == nil {
		return res, nil
	}
	var xerr *exec.ExitError
	if !errors.As(err, &xerr) {
		// Could not start.
		return res, err
	}
	res.ExitStatus = xerr.ExitCode()
	return res, &ExitError{Args: args, Status: res.ExitStatus, Err: err}
}

// combinedOutput runs c and returns its interleaved stdout and
// stderr. On a failed exit the output is still returned.
func combinedOutput(c *exec.Cmd) ([]byte, error) {
	var b bytes.Buffer
	c.Stdout = &b
	c.Stderr = &b
	if err := c.Start(); err != nil {
		return nil, err
	}
	err := c.Wait()
	return b.Bytes(), err
}
