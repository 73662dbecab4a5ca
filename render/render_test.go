// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/aclements/odeview/chart"
	"github.com/aclements/odeview/config"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

var (
	red  = chart.Stroke{Color: color.RGBA{0xff, 0, 0, 0xff}, Width: 2}
	gray = chart.Stroke{Color: color.RGBA{0x88, 0x88, 0x88, 0xff}, Width: 1, Dashed: true}
)

func decay() chart.Rendered {
	return chart.Rendered{
		Title: "Decay",
		X:     config.Axis{Kind: config.Linear, Label: "time", Auto: true},
		Y:     config.Axis{Kind: config.Log, Label: "mass", Auto: true},
		Series: []chart.RenderedSeries{
			{Title: "euler", Legend: true, Stroke: red, X: []float64{0, 1, 2, 3}, Y: []float64{100, 10, 1, 0}},
			{Title: "hidden", Stroke: gray, Static: true, X: []float64{0, 3}, Y: []float64{1, 1}},
		},
		Marks: []chart.RenderedMark{
			{Axis: config.Range, Value: 10, Layer: config.Background, Stroke: gray},
			{Axis: config.Domain, Value: 1, Layer: config.Foreground, Stroke: red},
			{Axis: config.Range, Value: -1, Layer: config.Foreground, Stroke: red},
		},
	}
}

type plotLine struct {
	XS, YS []float64
	Color  color.RGBA
	Points bool
}

func export(ls []line) []plotLine {
	var out []plotLine
	for _, l := range ls {
		out = append(out, plotLine{l.xs, l.ys, l.color, l.points})
	}
	return out
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestLayout(t *testing.T) {
	back, series, fore := layout(decay())

	// y = 0 is dropped on the log axis.
	wantSeries := []plotLine{
		{XS: []float64{0, 1, 2}, YS: []float64{2, 1, 0}, Color: red.Color},
		{XS: []float64{0, 3}, YS: []float64{0, 0}, Color: gray.Color},
	}
	if diff := cmp.Diff(wantSeries, export(series), approx); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	// Marks span the data extent. The y = -1 mark cannot be
	// drawn on a log axis.
	wantBack := []plotLine{{XS: []float64{0, 3}, YS: []float64{1, 1}, Color: gray.Color}}
	wantFore := []plotLine{{XS: []float64{1, 1}, YS: []float64{0, 2}, Color: red.Color}}
	if diff := cmp.Diff(wantBack, export(back), approx); diff != "" {
		t.Errorf("background marks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantFore, export(fore), approx); diff != "" {
		t.Errorf("foreground marks mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutExplicitRange(t *testing.T) {
	r := decay()
	r.Y = config.Axis{Kind: config.Linear, Label: "mass", Min: -5, Max: 200}
	r.Points = true
	_, series, fore := layout(r)
	if len(series) != 2 || !series[0].points {
		t.Fatalf("got %d series, points %v", len(series), series[0].points)
	}
	if got := fore[0].ys; !cmp.Equal(got, []float64{-5, 200}) {
		t.Errorf("domain mark spans %v, want the declared range", got)
	}
	if len(fore) != 2 {
		t.Errorf("got %d foreground marks, want 2", len(fore))
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, decay(), Width, Height); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "Decay: euler", "log10 mass", "time"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG does not contain %q", want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("notitle series appears in the title")
	}
}

func TestWriteSVGEmpty(t *testing.T) {
	r := decay()
	for i := range r.Series {
		r.Series[i].X, r.Series[i].Y = nil, nil
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, r, Width, Height); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "no data", "log10 mass", "time", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("placeholder does not contain %q:\n%s", want, out)
		}
	}
}

func TestTitle(t *testing.T) {
	r := decay()
	if got := title(r); got != "Decay: euler" {
		t.Errorf("title = %q", got)
	}
	r.Title = ""
	if got := title(r); got != "euler" {
		t.Errorf("untitled chart title = %q", got)
	}
	r.Series = r.Series[1:]
	if got := title(r); got != "" {
		t.Errorf("title with no legend = %q", got)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, []chart.Rendered{decay()}); err != nil {
		t.Fatal(err)
	}

	var got []struct {
		Title string
		Y     struct {
			Kind  string
			Label string
			Auto  bool
		}
		Series []struct {
			Title  string
			Legend bool
			Stroke struct {
				Color  string
				Width  float64
				Dashed bool
			}
			X []float64
		}
		Marks []struct {
			Axis  string
			Layer string
		}
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("%v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("got %d charts", len(got))
	}
	c := got[0]
	if c.Title != "Decay" || c.Y.Kind != "log" || c.Y.Label != "mass" || !c.Y.Auto {
		t.Errorf("chart header = %+v", c)
	}
	if len(c.Series) != 2 {
		t.Fatalf("got %d series", len(c.Series))
	}
	s0, s1 := c.Series[0], c.Series[1]
	if s0.Stroke.Color != "#ff0000" || s0.Stroke.Width != 2 || s0.Stroke.Dashed || !s0.Legend {
		t.Errorf("series 0 = %+v", s0)
	}
	if s1.Legend || !s1.Stroke.Dashed || s1.Stroke.Color != "#888888" {
		t.Errorf("series 1 = %+v", s1)
	}
	if !cmp.Equal(s0.X, []float64{0, 1, 2, 3}) {
		t.Errorf("series 0 x = %v", s0.X)
	}
	if len(c.Marks) != 3 || c.Marks[0].Axis != "y" || c.Marks[0].Layer != "background" || c.Marks[1].Axis != "x" {
		t.Errorf("marks = %+v", c.Marks)
	}
}
