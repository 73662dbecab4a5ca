// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws assembled charts.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/odeview/chart"
	"github.com/aclements/odeview/config"
	svg "github.com/ajstarks/svgo"
)

// Default image size, in pixels.
const (
	Width  = 500
	Height = 350
)

// axisMap converts data values to plot coordinates along one axis.
// Log axes plot log10 of the value and drop non-positive values.
type axisMap config.Axis

func (a axisMap) conv(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if a.Kind == config.Log {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

func (a axisMap) label() string {
	if a.Kind == config.Log {
		return "log10 " + a.Label
	}
	return a.Label
}

// scaler returns the scale for the axis, pinned to its declared range
// if it has one. lo and hi bound the data in plot coordinates. A
// single value is padded so the scale has a non-empty domain.
func (a axisMap) scaler(lo, hi float64) gg.ContinuousScaler {
	s := gg.NewLinearScaler()
	if !a.Auto {
		min, ok1 := a.conv(a.Min)
		max, ok2 := a.conv(a.Max)
		if ok1 && ok2 && min < max {
			return s.SetMin(min).SetMax(max)
		}
	}
	if lo == hi {
		pad := math.Abs(lo) / 10
		if pad == 0 {
			pad = 1
		}
		s.Include(lo - pad).Include(hi + pad)
	}
	return s
}

// line is one drawable polyline in plot coordinates.
type line struct {
	xs, ys []float64
	color  color.RGBA
	points bool
}

// layout converts r to plot coordinates. It returns the background
// mark lines, the series lines, and the foreground mark lines.
func layout(r chart.Rendered) (back, series, fore []line) {
	back, series, fore, _ = layoutBounds(r)
	return
}

// bounds is the extent of a chart's data in plot coordinates.
type bounds struct {
	xlo, xhi, ylo, yhi float64
}

func layoutBounds(r chart.Rendered) (back, series, fore []line, b bounds) {
	xa, ya := axisMap(r.X), axisMap(r.Y)

	var allX, allY []float64
	for _, s := range r.Series {
		var l line
		for i := range s.X {
			x, okX := xa.conv(s.X[i])
			y, okY := ya.conv(s.Y[i])
			if okX && okY {
				l.xs = append(l.xs, x)
				l.ys = append(l.ys, y)
			}
		}
		if len(l.xs) == 0 {
			continue
		}
		l.color, l.points = s.Stroke.Color, r.Points
		series = append(series, l)
		allX = append(allX, l.xs...)
		allY = append(allY, l.ys...)
	}
	if len(series) == 0 {
		return nil, nil, nil, b
	}
	b.xlo, b.xhi = stats.Bounds(allX)
	b.ylo, b.yhi = stats.Bounds(allY)

	// Marks span the data, or the declared range if there is one.
	xlo, xhi := extent(xa, allX)
	ylo, yhi := extent(ya, allY)
	for _, m := range r.Marks {
		var l line
		switch m.Axis {
		case config.Domain:
			v, ok := xa.conv(m.Value)
			if !ok {
				continue
			}
			l.xs, l.ys = []float64{v, v}, []float64{ylo, yhi}
		case config.Range:
			v, ok := ya.conv(m.Value)
			if !ok {
				continue
			}
			l.xs, l.ys = []float64{xlo, xhi}, []float64{v, v}
		}
		l.color = m.Stroke.Color
		if m.Layer == config.Background {
			back = append(back, l)
		} else {
			fore = append(fore, l)
		}
	}
	return back, series, fore, b
}

func extent(a axisMap, vs []float64) (lo, hi float64) {
	if !a.Auto {
		l, ok1 := a.conv(a.Min)
		h, ok2 := a.conv(a.Max)
		if ok1 && ok2 && l < h {
			return l, h
		}
	}
	return stats.Bounds(vs)
}

// WriteSVG draws r to w as an SVG image of the given size.
//
// Each series is drawn in its profile's color. A chart with no
// drawable points is drawn as an empty frame.
func WriteSVG(w io.Writer, r chart.Rendered, width, height int) error {
	back, series, fore, b := layoutBounds(r)
	if len(series) == 0 {
		return writeEmpty(w, r, width, height)
	}

	xa, ya := axisMap(r.X), axisMap(r.Y)
	var p *gg.Plot
	for _, group := range [][]line{back, series, fore} {
		for _, l := range group {
			tab := new(table.Builder).Add("x", l.xs).Add("y", l.ys).Done()
			if p == nil {
				p = gg.NewPlot(tab)
				p.SetScale("x", xa.scaler(b.xlo, b.xhi))
				p.SetScale("y", ya.scaler(b.ylo, b.yhi))
			} else {
				p.SetData(tab)
			}
			col := p.Const(l.color)
			p.Add(gg.LayerLines{X: "x", Y: "y", Color: col})
			if l.points {
				p.Add(gg.LayerPoints{X: "x", Y: "y", Color: col})
			}
		}
	}
	p.Add(gg.AxisLabel("x", xa.label()), gg.AxisLabel("y", ya.label()))
	if t := title(r); t != "" {
		p.Add(gg.Title(t))
	}
	return p.WriteSVG(w, width, height)
}

// title returns r's title followed by the titles of its legend
// entries.
func title(r chart.Rendered) string {
	var names []string
	for _, s := range r.Series {
		if s.Legend && s.Title != "" {
			names = append(names, s.Title)
		}
	}
	if len(names) == 0 {
		return r.Title
	}
	if r.Title == "" {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s: %s", r.Title, strings.Join(names, ", "))
}

// writeEmpty draws a frame with r's title and axis labels.
func writeEmpty(w io.Writer, r chart.Rendered, width, height int) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Rect(40, 30, width-60, height-70, "fill:none;stroke:#bbbbbb")
	textStyle := "font-family:sans-serif;font-size:12px;text-anchor:middle"
	if t := title(r); t != "" {
		canvas.Text(width/2, 18, t, textStyle)
	}
	canvas.Text(width/2, height/2, "no data", textStyle+";fill:#888888")
	canvas.Text(width/2, height-15, axisMap(r.X).label(), textStyle)
	canvas.TranslateRotate(14, height/2, -90)
	canvas.Text(0, 0, axisMap(r.Y).label(), textStyle)
	canvas.Gend()
	canvas.End()
	return ew.err
}

// errWriter records the first write error. svgo does not report
// errors itself.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
