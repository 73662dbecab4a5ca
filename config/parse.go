// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bufio"
	"errors"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/odeview/data"
	"github.com/aclements/odeview/param"
	"golang.org/x/image/colornames"
)

// ErrUnknownDirective marks a line whose keyword is not recognized.
// Such lines are recorded in Document.Diagnostics and ignored.
var ErrUnknownDirective = errors.New("unknown directive")

type parser struct {
	name   string
	doc    *Document
	labels map[string]bool

	// open is the chart that series and marks currently attach
	// to, or nil before the first plot or error directive.
	open *Chart
}

// ParseFile parses the configuration file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f, path)
}

// Parse parses a configuration from r.
//
// A structural problem aborts the parse and is returned as an *Error
// wrapping ErrStructural. Directives with malformed numbers are
// skipped and recorded in the returned Document's Diagnostics.
func Parse(r io.Reader) (*Document, error) {
	return parse(r, "")
}

func parse(r io.Reader, name string) (*Document, error) {
	doc := &Document{
		Files:    make(map[string]*File),
		Profiles: make(map[string]*Profile),
	}
	p := &parser{name: name, doc: doc, labels: make(map[string]bool)}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := p.directive(lineno, line)
		if err == nil {
			continue
		}
		perr := &Error{File: name, Line: lineno, Text: line, Err: err}
		if errors.Is(err, ErrNumericLiteral) || errors.Is(err, ErrUnknownDirective) {
			p.doc.Diagnostics = append(p.doc.Diagnostics, perr)
			continue
		}
		return nil, perr
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) directive(lineno int, line string) error {
	// These take the rest of the line verbatim, quotes and all.
	switch strings.Fields(line)[0] {
	case "title":
		p.doc.Title = rest(line)
		return nil
	case "description":
		p.doc.Description = rest(line)
		return nil
	case "run":
		cmd := rest(line)
		if cmd == "" {
			return structural("run needs a command")
		}
		p.doc.Commands = append(p.doc.Commands, cmd)
		return nil
	}

	args, err := fields(line)
	if err != nil {
		return err
	}

	switch args[0] {
	case "parameter":
		return p.parameter(args)
	case "choice":
		return p.choice(args)
	case "file":
		return p.file(args)
	case "profile":
		return p.profile(args)
	case "set":
		return p.set(args)
	case "plot":
		return p.plot(lineno, args)
	case "error":
		return p.errorChart(lineno, args)
	case "series":
		return p.series(lineno, args, false)
	case "static":
		if len(args) < 2 || args[1] != "series" {
			return structural("expected \"static series\"")
		}
		return p.series(lineno, args[1:], true)
	case "mark":
		return p.mark(lineno, args)
	default:
		return ErrUnknownDirective
	}
}

func (p *parser) declare(prm param.Param) error {
	if p.labels[prm.Label()] {
		return structural("parameter %q declared twice", prm.Label())
	}
	p.labels[prm.Label()] = true
	p.doc.Params = append(p.doc.Params, prm)
	return nil
}

// parameter <label> <min> <default> <max> <snap>
func (p *parser) parameter(args []string) error {
	if len(args) < 6 {
		return structural("parameter needs label, min, default, max and snap")
	}
	var vals [4]float64
	for i := range vals {
		v, err := strconv.ParseFloat(args[i+2], 64)
		if err != nil {
			return numeric("parameter %s: %q", args[1], args[i+2])
		}
		vals[i] = v
	}
	prm, err := param.NewNumeric(args[1], vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		return numeric("%v", err)
	}
	return p.declare(prm)
}

// choice <label> <option>...
func (p *parser) choice(args []string) error {
	if len(args) < 3 {
		return structural("choice needs a label and at least one option")
	}
	prm, err := param.NewChoice(args[1], args[2:]...)
	if err != nil {
		return structural("%v", err)
	}
	return p.declare(prm)
}

// file <alias> <path> [skip <N>]
func (p *parser) file(args []string) error {
	f := &File{}
	switch len(args) {
	case 3:
	case 5:
		if args[3] != "skip" {
			return structural("file: expected \"skip\", found %q", args[3])
		}
		n, err := strconv.Atoi(args[4])
		if err != nil || n < 0 {
			return numeric("file %s: skip count %q", args[1], args[4])
		}
		f.Skip = n
	default:
		return structural("file needs an alias and a path")
	}
	f.Alias, f.Path = args[1], args[2]
	p.doc.Files[f.Alias] = f
	return nil
}

// profile <alias> (hex|rgb|named) <color> weight <W> (solid|dashed)
func (p *parser) profile(args []string) error {
	if len(args) < 7 {
		return structural("profile needs alias, color, weight and line type")
	}
	prof := &Profile{Name: args[1]}

	switch args[2] {
	case "hex":
		c, ok := parseHex(args[3])
		if !ok {
			return structural("profile %s: bad hex color %q", args[1], args[3])
		}
		prof.Color = c
	case "rgb":
		c, ok := parseRGB(args[3])
		if !ok {
			return structural("profile %s: bad rgb color %q", args[1], args[3])
		}
		prof.Color = c
	case "named":
		c, ok := colornames.Map[strings.ToLower(args[3])]
		if !ok {
			return structural("profile %s: unknown color name %q", args[1], args[3])
		}
		prof.Color = c
	default:
		return structural("profile %s: color format must be hex, rgb or named", args[1])
	}

	if args[4] != "weight" {
		return structural("profile %s: expected \"weight\", found %q", args[1], args[4])
	}
	w, err := strconv.ParseFloat(args[5], 64)
	if err != nil || w < 0 {
		return numeric("profile %s: weight %q", args[1], args[5])
	}
	prof.Weight = w

	switch args[6] {
	case "solid":
		prof.Style = Solid
	case "dashed":
		prof.Style = Dashed
	default:
		return structural("profile %s: line type must be solid or dashed", args[1])
	}
	p.doc.Profiles[prof.Name] = prof
	return nil
}

func parseHex(s string) (color.RGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, true
}

func parseRGB(s string) (color.RGBA, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	var c [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return color.RGBA{}, false
		}
		c[i] = uint8(v)
	}
	return color.RGBA{c[0], c[1], c[2], 0xff}, true
}

// set filetype (csv|dat)
func (p *parser) set(args []string) error {
	if len(args) < 3 || args[1] != "filetype" {
		return structural("set supports only \"set filetype csv|dat\"")
	}
	switch args[2] {
	case "csv":
		p.doc.Delimiter = data.Comma
	case "dat":
		p.doc.Delimiter = data.Whitespace
	default:
		return structural("unknown filetype %q", args[2])
	}
	return nil
}

// plot xaxis <kind> <range> <label> yaxis <kind> <range> <label>
func (p *parser) plot(lineno int, args []string) error {
	if len(args) < 9 || args[1] != "xaxis" || args[5] != "yaxis" {
		return structural("plot needs xaxis and yaxis")
	}
	c := &Chart{Line: lineno}
	var err error
	if c.X, err = p.axis(lineno, "xaxis", args[2:5]); err != nil {
		return err
	}
	if c.Y, err = p.axis(lineno, "yaxis", args[6:9]); err != nil {
		return err
	}
	p.doc.Charts = append(p.doc.Charts, c)
	p.open = c
	return nil
}

// axis parses "<kind> <range> <label>". A malformed range is not
// fatal: the axis falls back to an automatic range and the problem
// is recorded as a diagnostic, so the plot still owns the directives
// that follow it.
func (p *parser) axis(lineno int, name string, args []string) (Axis, error) {
	a := Axis{Label: args[2], Auto: true}
	switch args[0] {
	case "num":
		a.Kind = Linear
	case "log":
		a.Kind = Log
	default:
		return a, structural("%s type must be num or log, found %q", name, args[0])
	}

	lo, hi, auto, err := parseRange(args[1])
	if err != nil {
		p.doc.Diagnostics = append(p.doc.Diagnostics, &Error{File: p.name, Line: lineno, Text: args[1], Err: numeric("%s range: %v", name, err)})
		return a, nil
	}
	if !auto {
		a.Auto, a.Min, a.Max = false, lo, hi
	}
	return a, nil
}

// parseRange parses [lo:hi], [lo:step:hi] or [::].
func parseRange(s string) (lo, hi float64, auto bool, err error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return 0, 0, false, errors.New("range must be bracketed")
	}
	parts := strings.Split(s[1:len(s)-1], ":")
	var loS, hiS string
	switch len(parts) {
	case 2:
		loS, hiS = parts[0], parts[1]
	case 3:
		loS, hiS = parts[0], parts[2]
	default:
		return 0, 0, false, errors.New("range must be [lo:hi]")
	}
	if loS == "" && hiS == "" {
		return 0, 0, true, nil
	}
	if lo, err = strconv.ParseFloat(loS, 64); err != nil {
		return 0, 0, false, err
	}
	if hi, err = strconv.ParseFloat(hiS, 64); err != nil {
		return 0, 0, false, err
	}
	if !(lo < hi) {
		return 0, 0, false, errors.New("empty range")
	}
	return lo, hi, false, nil
}

// error (diff|abs|rel) <alias> <X:Y> <any> <alias> <X:Y> <any> <profile>
func (p *parser) errorChart(lineno int, args []string) error {
	if len(args) < 9 {
		return structural("error needs a mode, two file columns and a profile")
	}
	spec := &ErrorSpec{Profile: args[8]}
	switch args[1] {
	case "diff":
		spec.Mode = data.Difference
	case "abs":
		spec.Mode = data.Absolute
	case "rel":
		spec.Mode = data.Relative
	default:
		return structural("error mode must be diff, abs or rel, found %q", args[1])
	}
	// The chart is open even if the directive is skipped, so the
	// series and marks under it are dropped with it rather than
	// bound to the previous chart.
	c := &Chart{Line: lineno, Error: spec}
	p.open = c
	var err error
	if spec.A, err = operand(args[2], args[3]); err != nil {
		return err
	}
	if spec.B, err = operand(args[5], args[6]); err != nil {
		return err
	}
	p.doc.Charts = append(p.doc.Charts, c)
	return nil
}

func operand(alias, cols string) (Operand, error) {
	x, y, err := parseCols(cols)
	if err != nil {
		return Operand{}, err
	}
	return Operand{File: alias, XCol: x, YCol: y}, nil
}

// parseCols parses an "X:Y" pair of 1-based column numbers.
func parseCols(s string) (x, y int, err error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, 0, numeric("columns %q must be X:Y", s)
	}
	x, errX := strconv.Atoi(s[:i])
	y, errY := strconv.Atoi(s[i+1:])
	if errX != nil || errY != nil || x < 1 || y < 1 {
		return 0, 0, numeric("columns %q must be positive integers", s)
	}
	return x, y, nil
}

func (p *parser) attach(it Item) error {
	if p.open == nil {
		return structural("series and marks must follow a plot or error directive")
	}
	p.open.Items = append(p.open.Items, it)
	return nil
}

// series <alias> <X:Y> <any> (<title>|notitle) <any> <profile>
//
// For static series, args starts at "series".
func (p *parser) series(lineno int, args []string, static bool) error {
	if len(args) < 7 {
		return structural("series needs a file, columns, title and profile")
	}
	x, y, err := parseCols(args[2])
	if err != nil {
		return err
	}
	s := &Series{
		Line:    lineno,
		Static:  static,
		File:    args[1],
		XCol:    x,
		YCol:    y,
		Title:   args[4],
		Profile: args[6],
	}
	if s.Title == "notitle" {
		s.Title, s.NoTitle = "", true
	}
	return p.attach(s)
}

// mark (x|y) <value> (foreground|background) <any> <profile>
func (p *parser) mark(lineno int, args []string) error {
	if len(args) < 6 {
		return structural("mark needs an axis, value, layer and profile")
	}
	m := &Mark{Line: lineno, Profile: args[5]}
	switch args[1] {
	case "x":
		m.Axis = Domain
	case "y":
		m.Axis = Range
	default:
		return structural("mark axis must be x or y, found %q", args[1])
	}
	switch args[3] {
	case "foreground":
		m.Layer = Foreground
	case "background":
		m.Layer = Background
	default:
		return structural("mark layer must be foreground or background, found %q", args[3])
	}
	v, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return numeric("mark value %q", args[2])
	}
	m.Value = v
	return p.attach(m)
}
