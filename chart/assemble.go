// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart turns the charts of a configuration document into
// concrete chart specifications backed by loaded data.
//
// Assembly happens in two passes over the same tree. Declare checks
// every reference, resolves profiles and loads static series once.
// Render runs after every update cycle and reloads everything else.
package chart

import (
	"fmt"

	"github.com/aclements/odeview/config"
	"github.com/aclements/odeview/data"
)

// Counts is the number of nodes a pass visited.
type Counts struct {
	Charts, Series, Marks int
}

// Rendered is one chart ready for drawing.
type Rendered struct {
	Title  string           `yaml:"title,omitempty"`
	X      config.Axis      `yaml:"x"`
	Y      config.Axis      `yaml:"y"`
	Series []RenderedSeries `yaml:"series"`
	Marks  []RenderedMark   `yaml:"marks,omitempty"`

	// Points requests a marker at every data point.
	Points bool `yaml:"points,omitempty"`
}

// RenderedSeries is one line of a chart.
type RenderedSeries struct {
	Title string `yaml:"title"`

	// Legend is false for series declared with notitle.
	Legend bool   `yaml:"legend"`
	Stroke Stroke `yaml:"stroke"`
	Static bool   `yaml:"static,omitempty"`

	X []float64 `yaml:"x,flow"`
	Y []float64 `yaml:"y,flow"`
}

// RenderedMark is a constant line across a chart.
type RenderedMark struct {
	Axis   config.MarkAxis `yaml:"axis"`
	Value  float64         `yaml:"value"`
	Layer  config.Layer    `yaml:"layer"`
	Stroke Stroke          `yaml:"stroke"`
}

// Assembler builds Rendered charts for one document.
//
// An Assembler is not safe for concurrent use.
type Assembler struct {
	doc    *config.Document
	loader *data.Loader

	// axes holds the live x and y axis of each chart, which
	// SetAxisKind may change.
	axes [][2]config.Axis

	strokes map[interface{}]Stroke
	marks   map[*config.Mark]RenderedMark
	static  map[*config.Series]data.Series

	declared Counts
	points   bool
}

// Declare checks doc's charts and returns an Assembler for them.
//
// Every profile and file alias a chart refers to must be declared in
// doc; otherwise Declare returns a *config.Error wrapping
// config.ErrStructural. Static series are loaded here, once.
func Declare(doc *config.Document, loader *data.Loader) (*Assembler, error) {
	a := &Assembler{
		doc:     doc,
		loader:  loader,
		strokes: make(map[interface{}]Stroke),
		marks:   make(map[*config.Mark]RenderedMark),
		static:  make(map[*config.Series]data.Series),
	}
	res := NewResolver(doc.Profiles)
	for _, c := range doc.Charts {
		a.declared.Charts++
		if err := a.declareChart(res, c); err != nil {
			return nil, &config.Error{Line: c.Line, Err: err}
		}
		for _, it := range c.Items {
			var err error
			var line int
			switch it := it.(type) {
			case *config.Series:
				a.declared.Series++
				line = it.Line
				err = a.declareSeries(res, it)
			case *config.Mark:
				a.declared.Marks++
				line = it.Line
				a.marks[it], err = res.Mark(it)
			default:
				panic(fmt.Sprintf("chart: unexpected item %T", it))
			}
			if err != nil {
				return nil, &config.Error{Line: line, Err: err}
			}
		}
	}
	return a, nil
}

func (a *Assembler) declareChart(res *Resolver, c *config.Chart) error {
	x, y := c.X, c.Y
	if c.Error != nil {
		for _, op := range []config.Operand{c.Error.A, c.Error.B} {
			if _, err := a.file(op.File); err != nil {
				return err
			}
		}
		s, err := res.Profile(c.Error.Profile)
		if err != nil {
			return err
		}
		a.strokes[c] = s
		x = config.Axis{Kind: config.Linear, Label: "Aligned Value", Auto: true}
		y = config.Axis{Kind: config.Linear, Label: "Errors", Auto: true}
	}
	a.axes = append(a.axes, [2]config.Axis{x, y})
	return nil
}

func (a *Assembler) declareSeries(res *Resolver, s *config.Series) error {
	f, err := a.file(s.File)
	if err != nil {
		return err
	}
	if a.strokes[s], err = res.Profile(s.Profile); err != nil {
		return err
	}
	if s.Static {
		a.static[s] = a.loader.Load(f.Path, f.Skip, s.XCol, s.YCol)
	}
	return nil
}

func (a *Assembler) file(alias string) (*config.File, error) {
	f, ok := a.doc.Files[alias]
	if !ok {
		return nil, fmt.Errorf("%w: unknown file %q", config.ErrStructural, alias)
	}
	return f, nil
}

// Declared returns the number of nodes the declaration pass visited.
func (a *Assembler) Declared() Counts {
	return a.declared
}

// Len returns the number of charts.
func (a *Assembler) Len() int {
	return len(a.axes)
}

// Points reports whether rendered charts mark every data point.
func (a *Assembler) Points() bool {
	return a.points
}

// SetPoints sets whether rendered charts mark every data point.
func (a *Assembler) SetPoints(on bool) {
	a.points = on
}

// SetAxisKind changes the scale of the x (config.Domain) or y
// (config.Range) axis of chart i.
func (a *Assembler) SetAxisKind(i int, axis config.MarkAxis, kind config.AxisKind) error {
	if i < 0 || i >= len(a.axes) {
		return fmt.Errorf("no chart %d (have %d)", i, len(a.axes))
	}
	switch axis {
	case config.Domain:
		a.axes[i][0].Kind = kind
	case config.Range:
		a.axes[i][1].Kind = kind
	default:
		return fmt.Errorf("unknown axis %v", axis)
	}
	return nil
}

// Render reloads dynamic data and returns every chart, along with the
// number of nodes it visited. The counts always equal Declared.
func (a *Assembler) Render() ([]Rendered, Counts) {
	var n Counts
	out := make([]Rendered, 0, len(a.doc.Charts))
	for i, c := range a.doc.Charts {
		n.Charts++
		r := Rendered{
			Title:  a.doc.Title,
			X:      a.axes[i][0],
			Y:      a.axes[i][1],
			Points: a.points,
		}
		if c.Error != nil {
			r.Series = append(r.Series, a.renderError(c))
		}
		for _, it := range c.Items {
			switch it := it.(type) {
			case *config.Series:
				n.Series++
				r.Series = append(r.Series, a.renderSeries(it))
			case *config.Mark:
				n.Marks++
				r.Marks = append(r.Marks, a.marks[it])
			default:
				panic(fmt.Sprintf("chart: unexpected item %T", it))
			}
		}
		out = append(out, r)
	}
	return out, n
}

func (a *Assembler) load(op config.Operand) data.Series {
	f := a.doc.Files[op.File]
	return a.loader.Load(f.Path, f.Skip, op.XCol, op.YCol)
}

func (a *Assembler) renderError(c *config.Chart) RenderedSeries {
	spec := c.Error
	s := data.MatchCull(a.load(spec.A), a.load(spec.B), spec.Mode)
	return RenderedSeries{
		Title:  spec.Mode.String(),
		Legend: true,
		Stroke: a.strokes[c],
		X:      s.X,
		Y:      s.Y,
	}
}

func (a *Assembler) renderSeries(s *config.Series) RenderedSeries {
	var d data.Series
	if s.Static {
		d = a.static[s]
	} else {
		d = a.load(config.Operand{File: s.File, XCol: s.XCol, YCol: s.YCol})
	}
	return RenderedSeries{
		Title:  s.Title,
		Legend: !s.NoTitle,
		Stroke: a.strokes[s],
		Static: s.Static,
		X:      d.X,
		Y:      d.Y,
	}
}
