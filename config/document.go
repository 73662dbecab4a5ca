// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"image/color"

	"github.com/aclements/odeview/data"
	"github.com/aclements/odeview/param"
)

// Document is a parsed configuration file.
type Document struct {
	Title       string
	Description string

	// Params are the declared parameters in document order.
	Params []param.Param

	// Commands are the run templates in document order.
	Commands []string

	// Charts are the plot and error charts in document order.
	// Each chart owns the series and marks declared under it.
	Charts []*Chart

	Files     map[string]*File
	Profiles  map[string]*Profile
	Delimiter data.Delimiter

	// Diagnostics are the recoverable problems found while
	// parsing. The directives they describe were skipped.
	Diagnostics []*Error
}

// Counts returns the number of charts, series (dynamic and static)
// and marks in d.
func (d *Document) Counts() (charts, series, marks int) {
	for _, c := range d.Charts {
		charts++
		for _, it := range c.Items {
			switch it.(type) {
			case *Series:
				series++
			case *Mark:
				marks++
			}
		}
	}
	return
}

// File is a data file alias.
type File struct {
	Alias string
	Path  string

	// Skip is the number of lines dropped after each kept line.
	// Skip 0 keeps every line.
	Skip int
}

// Profile is a named line style.
type Profile struct {
	Name   string
	Color  color.RGBA
	Weight float64
	Style  StrokeStyle
}

// StrokeStyle is the dash pattern of a line.
type StrokeStyle int

const (
	Solid StrokeStyle = iota
	Dashed
)

func (s StrokeStyle) String() string {
	if s == Dashed {
		return "dashed"
	}
	return "solid"
}

// AxisKind is the scale of a chart axis.
type AxisKind int

const (
	Linear AxisKind = iota
	Log
)

func (k AxisKind) String() string {
	if k == Log {
		return "log"
	}
	return "num"
}

func (k AxisKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Axis describes one axis of a plot.
type Axis struct {
	Kind  AxisKind `yaml:"kind"`
	Label string   `yaml:"label"`

	// Auto is true if the range follows the data. Otherwise the
	// axis spans [Min, Max].
	Auto bool    `yaml:"auto"`
	Min  float64 `yaml:"min,omitempty"`
	Max  float64 `yaml:"max,omitempty"`
}

// Chart is a plot or error directive and the directives bound to it.
type Chart struct {
	Line int

	// X and Y are the declared axes. They are zero for an error
	// chart.
	X, Y Axis

	// Error is non-nil for an error chart.
	Error *ErrorSpec

	// Items are the *Series and *Mark directives bound to this
	// chart, in document order.
	Items []Item
}

// An Item is a *Series or a *Mark.
type Item interface {
	item()
}

// Series plots two columns of a data file.
type Series struct {
	Line    int
	Static  bool
	File    string // file alias
	XCol    int    // 1-based
	YCol    int    // 1-based
	Title   string
	NoTitle bool
	Profile string
}

func (*Series) item() {}

// MarkAxis is the axis a mark is drawn across.
type MarkAxis int

const (
	// Domain marks are vertical lines at an x value.
	Domain MarkAxis = iota
	// Range marks are horizontal lines at a y value.
	Range
)

func (a MarkAxis) String() string {
	if a == Range {
		return "y"
	}
	return "x"
}

func (a MarkAxis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Layer places a mark in front of or behind the data.
type Layer int

const (
	Foreground Layer = iota
	Background
)

func (l Layer) String() string {
	if l == Background {
		return "background"
	}
	return "foreground"
}

func (l Layer) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Mark is a constant line drawn on a chart.
type Mark struct {
	Line    int
	Axis    MarkAxis
	Value   float64
	Layer   Layer
	Profile string
}

func (*Mark) item() {}

// Operand is one side of an error directive.
type Operand struct {
	File string
	XCol int
	YCol int
}

// ErrorSpec compares two series that share x values.
type ErrorSpec struct {
	Mode    data.Mode
	A, B    Operand
	Profile string
}
