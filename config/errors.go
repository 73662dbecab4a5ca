// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural marks a configuration that cannot be loaded:
	// a missing keyword, an unknown axis or mark option, or a
	// reference to an undeclared profile or file.
	ErrStructural = errors.New("invalid configuration")

	// ErrNumericLiteral marks a directive skipped because one of
	// its numbers could not be parsed.
	ErrNumericLiteral = errors.New("bad number")
)

// Error is a problem with one directive of a configuration file.
type Error struct {
	File string // may be empty
	Line int    // 1-based; 0 if not tied to a line
	Text string // the directive, as written
	Err  error  // wraps ErrStructural or ErrNumericLiteral
}

func (e *Error) Error() string {
	pos := e.File
	if e.Line > 0 {
		if pos != "" {
			pos += ":"
		}
		pos += fmt.Sprint(e.Line)
	}
	if pos != "" {
		pos += ": "
	}
	if e.Text == "" {
		return pos + e.Err.Error()
	}
	return fmt.Sprintf("%s%v (%q)", pos, e.Err, e.Text)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// structural returns an error wrapping ErrStructural.
func structural(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...))
}

// numeric returns an error wrapping ErrNumericLiteral.
func numeric(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNumericLiteral, fmt.Sprintf(format, args...))
}
