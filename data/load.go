// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package data loads numeric columns from simulation output files and
// aligns pairs of series for error plots.
package data

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// ErrDataRow is returned when a line has too few fields for the
// requested columns. The rows before it are still returned.
var ErrDataRow = errors.New("column out of range")

// Delimiter selects how lines are split into fields.
type Delimiter int

const (
	// Whitespace splits on runs of spaces and tabs.
	Whitespace Delimiter = iota
	// Comma splits on commas and trims each field.
	Comma
)

func (d Delimiter) String() string {
	if d == Comma {
		return "csv"
	}
	return "dat"
}

func (d Delimiter) split(line string) []string {
	if d == Whitespace {
		return strings.Fields(line)
	}
	fs := strings.Split(line, ",")
	for i, f := range fs {
		fs[i] = strings.TrimSpace(f)
	}
	return fs
}

// Series is a sequence of (x, y) points.
type Series struct {
	X, Y []float64

	// MinY and MaxY bound Y. Both are NaN for an empty series.
	MinY, MaxY float64
}

// NewSeries returns a Series over xs and ys, which must be the same
// length.
func NewSeries(xs, ys []float64) Series {
	if len(xs) != len(ys) {
		panic("data: x and y lengths differ")
	}
	s := Series{X: xs, Y: ys, MinY: math.NaN(), MaxY: math.NaN()}
	if len(ys) > 0 {
		s.MinY, s.MaxY = stats.Bounds(ys)
	}
	return s
}

// Len returns the number of points in s.
func (s Series) Len() int {
	return len(s.X)
}

// LoadLines reads lines from r, trims them, and keeps every
// (skip+1)'th line starting with the first.
func LoadLines(r io.Reader, skip int) ([]string, error) {
	if skip < 0 {
		skip = 0
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)
	for n := 0; scanner.Scan(); n++ {
		if n%(skip+1) == 0 {
			lines = append(lines, strings.TrimSpace(scanner.Text()))
		}
	}
	return lines, scanner.Err()
}

// isSentinel reports whether tok is one of the nan/inf spellings
// simulations print for non-finite values.
func isSentinel(tok string) bool {
	switch strings.ToLower(tok) {
	case "nan", "-nan", "+nan", "inf", "-inf", "+inf":
		return true
	}
	return false
}

// Extract parses columns xCol and yCol (1-based) of lines into a
// Series.
//
// Lines with fewer than two fields are skipped, as are lines where
// either selected field is a nan or inf sentinel or does not parse as
// a finite number (such as a header). If a line has fewer fields
// than a selected column, Extract stops and returns the rows read so
// far along with an error wrapping ErrDataRow.
func Extract(lines []string, xCol, yCol int, delim Delimiter) (Series, error) {
	xs := make([]float64, 0, len(lines))
	ys := make([]float64, 0, len(lines))
	for i, line := range lines {
		fs := delim.split(line)
		if len(fs) < 2 {
			continue
		}
		if xCol > len(fs) || yCol > len(fs) || xCol < 1 || yCol < 1 {
			err := fmt.Errorf("%w: line %d has %d fields, want columns %d and %d", ErrDataRow, i+1, len(fs), xCol, yCol)
			return NewSeries(xs, ys), err
		}
		xt, yt := fs[xCol-1], fs[yCol-1]
		if isSentinel(xt) || isSentinel(yt) {
			continue
		}
		x, err1 := strconv.ParseFloat(xt, 64)
		y, err2 := strconv.ParseFloat(yt, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return NewSeries(xs, ys), nil
}

// Loader reads data files from disk. Every call reads the file
// again; nothing is cached.
type Loader struct {
	// Dir is the directory relative paths are resolved against.
	// If empty, they are relative to the working directory.
	Dir string

	Delim Delimiter

	// Log receives I/O and row errors. If nil, they are
	// discarded.
	Log *log.Logger
}

func (l *Loader) logf(format string, args ...interface{}) {
	if l.Log != nil {
		l.Log.Printf(format, args...)
	}
}

func (l *Loader) path(p string) string {
	if l.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Dir, p)
}

// Lines returns the kept lines of the file at path. A file that
// cannot be read is logged and yields no lines.
func (l *Loader) Lines(path string, skip int) []string {
	f, err := os.Open(l.path(path))
	if err != nil {
		l.logf("%v", err)
		return nil
	}
	defer f.Close()
	lines, err := LoadLines(f, skip)
	if err != nil {
		l.logf("reading %s: %v", path, err)
	}
	return lines
}

// Load reads columns xCol and yCol of the file at path. Errors are
// logged; the result holds whatever rows could be read.
func (l *Loader) Load(path string, skip, xCol, yCol int) Series {
	s, err := Extract(l.Lines(path, skip), xCol, yCol, l.Delim)
	if err != nil {
		l.logf("%s: %v", path, err)
	}
	return s
}
