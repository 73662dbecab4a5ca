// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"image/color"
	"path"
	"strings"
	"testing"

	"github.com/aclements/odeview/data"
	"github.com/aclements/odeview/param"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/colornames"
	"golang.org/x/tools/txtar"
)

func TestParseFile(t *testing.T) {
	doc, err := ParseFile("testdata/lorenz.cfg")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", doc.Diagnostics)
	}

	want := &Document{
		Title:       "Lorenz system",
		Description: "Three coupled ODEs; sigma, rho and beta are live.",
		Params: []param.Param{
			&param.Numeric{Name: "sigma", Min: 0, Max: 20, Default: 10, Snap: 0.1, Value: 10},
			&param.Numeric{Name: "rho", Min: 0, Max: 50, Default: 28, Snap: 0.5, Value: 28},
			&param.Numeric{Name: "beta", Min: 0, Max: 5, Default: 2.67, Snap: 0.01, Value: 2.67},
			&param.Choice{Name: "method", Options: []string{"euler", "rk4"}, Selected: "euler"},
		},
		Commands: []string{
			"./lorenz -s $sigma -r $rho -b $beta -m $method -o out.dat",
			"./lorenz -s $sigma -r $rho -b $beta -m rk4 -o ref.dat",
		},
		Files: map[string]*File{
			"out":     {Alias: "out", Path: "out.dat"},
			"ref":     {Alias: "ref", Path: "ref.dat", Skip: 1},
			"trusted": {Alias: "trusted", Path: "data/trusted run.dat"},
		},
		Profiles: map[string]*Profile{
			"red":  {Name: "red", Color: color.RGBA{0xff, 0, 0, 0xff}, Weight: 2, Style: Solid},
			"teal": {Name: "teal", Color: color.RGBA{0, 128, 128, 0xff}, Weight: 1.5, Style: Dashed},
			"grid": {Name: "grid", Color: colornames.Lightgray, Weight: 0.5, Style: Solid},
		},
		Charts: []*Chart{
			{
				Line: 20,
				X:    Axis{Kind: Linear, Label: "time (s)", Min: 0, Max: 50},
				Y:    Axis{Kind: Linear, Label: "x", Auto: true},
				Items: []Item{
					&Series{Line: 21, File: "out", XCol: 1, YCol: 2, Title: "Euler x", Profile: "red"},
					&Series{Line: 22, Static: true, File: "trusted", XCol: 1, YCol: 2, Title: "trusted", Profile: "grid"},
					&Mark{Line: 23, Axis: Range, Value: 0, Layer: Background, Profile: "grid"},
				},
			},
			{
				Line: 25,
				X:    Axis{Kind: Linear, Label: "t", Auto: true},
				Y:    Axis{Kind: Log, Label: "energy", Min: 1e-3, Max: 1e3},
				Items: []Item{
					&Series{Line: 26, File: "out", XCol: 1, YCol: 5, NoTitle: true, Profile: "teal"},
					&Mark{Line: 27, Axis: Domain, Value: 25, Layer: Foreground, Profile: "red"},
				},
			},
			{
				Line: 29,
				Error: &ErrorSpec{
					Mode:    data.Relative,
					A:       Operand{File: "out", XCol: 1, YCol: 2},
					B:       Operand{File: "ref", XCol: 1, YCol: 2},
					Profile: "teal",
				},
				Items: []Item{
					&Mark{Line: 30, Axis: Range, Value: 0, Layer: Background, Profile: "grid"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, doc, cmpopts.IgnoreFields(Document{}, "Diagnostics")); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	charts, series, marks := doc.Counts()
	if charts != 3 || series != 3 || marks != 3 {
		t.Errorf("Counts() = %d, %d, %d; want 3, 3, 3", charts, series, marks)
	}
}

func TestParseErrors(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/errors.txtar")
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range ar.Files {
		kind := path.Dir(f.Name)
		t.Run(f.Name, func(t *testing.T) {
			doc, err := Parse(bytes.NewReader(f.Data))
			if kind == "structural" {
				if !errors.Is(err, ErrStructural) {
					t.Fatalf("got error %v, want ErrStructural", err)
				}
				var perr *Error
				if !errors.As(err, &perr) || perr.Line == 0 {
					t.Errorf("error %v does not carry a line number", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			var want error
			switch kind {
			case "numeric":
				want = ErrNumericLiteral
			case "unknown":
				want = ErrUnknownDirective
			case "ok":
				if len(doc.Diagnostics) != 0 {
					t.Errorf("unexpected diagnostics: %v", doc.Diagnostics)
				}
				return
			default:
				t.Fatalf("unknown fixture kind %q", kind)
			}
			if len(doc.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics %v, want 1", len(doc.Diagnostics), doc.Diagnostics)
			}
			if !errors.Is(doc.Diagnostics[0], want) {
				t.Errorf("diagnostic %v does not wrap %v", doc.Diagnostics[0], want)
			}
		})
	}
}

func TestNumericDirectiveSkipped(t *testing.T) {
	const cfg = `
parameter a -2.0 one 2.0 0.1
parameter b 0 1 2 0.5
plot xaxis num [0:1] x yaxis num [0:1] y
mark y zero background at p
mark y 1 background at p
`
	doc, err := Parse(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Params) != 1 || doc.Params[0].Label() != "b" {
		t.Errorf("params = %v, want only b", doc.Params)
	}
	if _, _, marks := doc.Counts(); marks != 1 {
		t.Errorf("got %d marks, want 1", marks)
	}
	if len(doc.Diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(doc.Diagnostics))
	}
	if got := doc.Diagnostics[0].Line; got != 2 {
		t.Errorf("first diagnostic on line %d, want 2", got)
	}
}

func TestSkippedErrorChartDropsChildren(t *testing.T) {
	const cfg = `plot xaxis num [0:1] x yaxis num [0:1] y
series f 1:2 using a with p
error diff f 1:x using f 1:2 using p
series f 1:2 using b with p
mark y 0 foreground at p
plot xaxis num [0:1] x yaxis num [0:1] y
series f 1:3 using c with p
`
	doc, err := Parse(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Line != 3 {
		t.Fatalf("diagnostics = %v, want one on line 3", doc.Diagnostics)
	}
	if len(doc.Charts) != 2 {
		t.Fatalf("got %d charts, want 2", len(doc.Charts))
	}
	for i, want := range []string{"a", "c"} {
		items := doc.Charts[i].Items
		if len(items) != 1 {
			t.Errorf("chart %d has %d items, want 1", i, len(items))
			continue
		}
		if s, ok := items[0].(*Series); !ok || s.Title != want {
			t.Errorf("chart %d item = %+v, want series %s", i, items[0], want)
		}
	}
}

func TestRawTextDirectives(t *testing.T) {
	const cfg = `title Bob's oscillator
description damping [0, 1 "approx
run ./sim --note=it's $a
`
	doc, err := Parse(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Bob's oscillator" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Description != `damping [0, 1 "approx` {
		t.Errorf("description = %q", doc.Description)
	}
	if want := []string{"./sim --note=it's $a"}; !cmp.Equal(doc.Commands, want) {
		t.Errorf("commands = %q, want %q", doc.Commands, want)
	}
}

func TestBadRangeFallsBackToAuto(t *testing.T) {
	const cfg = `plot xaxis num [0:abc] x yaxis num [5:1] y
mark x 1 foreground at p
`
	doc, err := Parse(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(doc.Charts))
	}
	c := doc.Charts[0]
	if !c.X.Auto || !c.Y.Auto {
		t.Errorf("axes not automatic: %+v %+v", c.X, c.Y)
	}
	if len(c.Items) != 1 {
		t.Errorf("mark not bound to the plot")
	}
	if len(doc.Diagnostics) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(doc.Diagnostics))
	}
}

func TestItemsBindToPrecedingChart(t *testing.T) {
	const cfg = `plot xaxis num [::] x yaxis num [::] y
series a 1:2 using one with p
plot xaxis num [::] x yaxis num [::] y
series a 1:3 using two with p
series a 1:4 using three with p
`
	doc, err := Parse(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	var got [][]string
	for _, c := range doc.Charts {
		var titles []string
		for _, it := range c.Items {
			titles = append(titles, it.(*Series).Title)
		}
		got = append(got, titles)
	}
	want := [][]string{{"one"}, {"two", "three"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("binding mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRange(t *testing.T) {
	for _, test := range []struct {
		in     string
		lo, hi float64
		auto   bool
		bad    bool
	}{
		{in: "[0:1]", lo: 0, hi: 1},
		{in: "[-1.5:0:2e3]", lo: -1.5, hi: 2e3},
		{in: "[:]", auto: true},
		{in: "[::]", auto: true},
		{in: "[1:1]", bad: true},
		{in: "[0:x]", bad: true},
		{in: "[0]", bad: true},
		{in: "0:1", bad: true},
	} {
		lo, hi, auto, err := parseRange(test.in)
		if test.bad {
			if err == nil {
				t.Errorf("parseRange(%q) succeeded, want error", test.in)
			}
			continue
		}
		if err != nil || lo != test.lo || hi != test.hi || auto != test.auto {
			t.Errorf("parseRange(%q) = %v, %v, %v, %v; want %v, %v, %v", test.in, lo, hi, auto, err, test.lo, test.hi, test.auto)
		}
	}
}

func TestFields(t *testing.T) {
	for _, test := range []struct {
		in   string
		want []string
	}{
		{"series a 1:2 using x with p", []string{"series", "a", "1:2", "using", "x", "with", "p"}},
		{`title "a b"  'c d'`, []string{"title", "a b", "c d"}},
		{"plot xaxis num [ 0 : 1 ] x", []string{"plot", "xaxis", "num", "[0:1]", "x"}},
		{"\tfile a\tb.dat  ", []string{"file", "a", "b.dat"}},
		{`x ""`, []string{"x", ""}},
	} {
		got, err := fields(test.in)
		if err != nil {
			t.Errorf("fields(%q): %v", test.in, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("fields(%q) mismatch (-want +got):\n%s", test.in, diff)
		}
	}

	for _, bad := range []string{`title "a`, "plot [0:1"} {
		if _, err := fields(bad); !errors.Is(err, ErrStructural) {
			t.Errorf("fields(%q) error = %v, want ErrStructural", bad, err)
		}
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{File: "a.cfg", Line: 3, Text: "mark q", Err: ErrStructural}
	if got, want := e.Error(), `a.cfg:3: invalid configuration ("mark q")`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
