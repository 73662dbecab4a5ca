// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view ties a configuration document to its live parameter
// values, its commands, and its charts.
//
// Every change to a view runs one update cycle: the view's commands
// run in order with the current parameter values substituted, then
// every chart is rebuilt from the files they wrote. Cycles run on the
// caller's goroutine. A change requested while a cycle is in flight,
// for example by a control that reacts to an echoed value, is dropped
// and reported as ErrBusy.
package view

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aclements/odeview/chart"
	"github.com/aclements/odeview/config"
	"github.com/aclements/odeview/data"
	"github.com/aclements/odeview/param"
	"github.com/aclements/odeview/runner"
)

// ErrBusy is returned for a change requested while an update cycle
// is in flight. The change is discarded, not queued.
var ErrBusy = errors.New("update in progress")

// Controls is the user-facing side of a view.
type Controls interface {
	// Echo pushes an edited value into the control surface that
	// did not receive the edit. It may call back into the View.
	Echo(e param.Echo)

	// Show publishes the charts built by a cycle.
	Show(charts []chart.Rendered)
}

// Options configure a View.
type Options struct {
	// Dir is the directory commands run in and relative data
	// paths are resolved against. If empty, the current directory
	// is used.
	Dir string

	// Runner runs commands. If nil, commands run as child
	// processes in Dir.
	Runner runner.Runner

	// Log receives diagnostics and command failures. If nil, they
	// are discarded.
	Log *log.Logger

	// Verbose also logs command output and dropped changes.
	Verbose bool

	Controls Controls
}

// Stats counts what a View has done.
type Stats struct {
	Cycles   int // update cycles run
	Commands int // commands run
	Failures int // commands that failed to start or exited non-zero
	Dropped  int // changes dropped because a cycle was in flight
}

// View is one loaded configuration.
//
// A View is not safe for concurrent use.
type View struct {
	doc      *config.Document
	store    *param.Store
	asm      *chart.Assembler
	run      runner.Runner
	log      *log.Logger
	verbose  bool
	controls Controls

	// updating is set for the duration of a cycle, including
	// the echo that precedes it.
	updating bool

	stats  Stats
	charts []chart.Rendered
}

// cycle is the state of one update.
type cycle struct {
	n        int
	failures int
}

// Load parses the configuration file at path, declares its charts,
// and runs the first update cycle.
func Load(path string, opts Options) (*View, error) {
	doc, err := config.ParseFile(path)
	if err != nil {
		return nil, err
	}
	v, err := New(doc, opts)
	if err != nil {
		var perr *config.Error
		if errors.As(err, &perr) && perr.File == "" {
			perr.File = path
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := v.Recompute(); err != nil {
		return nil, err
	}
	return v, nil
}

// New returns a View of doc. Its diagnostics are logged. New does
// not run a cycle.
func New(doc *config.Document, opts Options) (*View, error) {
	v := &View{
		doc:      doc,
		run:      opts.Runner,
		log:      opts.Log,
		verbose:  opts.Verbose,
		controls: opts.Controls,
	}
	if v.log == nil {
		v.log = log.New(io.Discard, "", 0)
	}
	if v.run == nil {
		v.run = &runner.Exec{Dir: opts.Dir}
	}
	for _, d := range doc.Diagnostics {
		v.log.Printf("skipping directive: %v", d)
	}

	var err error
	if v.store, err = param.NewStore(doc.Params); err != nil {
		return nil, err
	}
	loader := &data.Loader{Dir: opts.Dir, Delim: doc.Delimiter, Log: v.log}
	if v.asm, err = chart.Declare(doc, loader); err != nil {
		return nil, err
	}
	return v, nil
}

// Title returns the document's title.
func (v *View) Title() string {
	return v.doc.Title
}

// Description returns the document's description.
func (v *View) Description() string {
	return v.doc.Description
}

// Params returns the view's parameters in declared order. Callers
// must not modify them; use Edit.
func (v *View) Params() []param.Param {
	return v.store.Params()
}

// Charts returns the charts built by the last cycle.
func (v *View) Charts() []chart.Rendered {
	return v.charts
}

// Stats returns the view's counters.
func (v *View) Stats() Stats {
	return v.stats
}

func (v *View) debugf(format string, args ...interface{}) {
	if v.verbose {
		v.log.Printf(format, args...)
	}
}

// begin claims the update guard. It returns false, and counts the
// drop, if a cycle is already in flight.
func (v *View) begin(what string) bool {
	if v.updating {
		v.stats.Dropped++
		v.debugf("dropped %s: update in progress", what)
		return false
	}
	v.updating = true
	return true
}

func (v *View) end() {
	v.updating = false
}

// Edit sets parameter label from raw, as received from control src,
// echoes the value to the other control, and runs a cycle.
//
// If a cycle is in flight, Edit does nothing and returns ErrBusy. An
// edit that the parameter rejects returns an error wrapping
// param.ErrUnknown or param.ErrBadValue and runs no cycle.
func (v *View) Edit(label, raw string, src param.Source) error {
	if !v.begin(fmt.Sprintf("%s edit of %s", src, label)) {
		return ErrBusy
	}
	defer v.end()

	echo, err := v.store.Set(label, raw, src)
	if err != nil {
		return err
	}
	if v.controls != nil {
		v.controls.Echo(echo)
	}
	v.update()
	return nil
}

// Recompute runs a cycle without changing anything.
func (v *View) Recompute() error {
	if !v.begin("recompute") {
		return ErrBusy
	}
	defer v.end()
	v.update()
	return nil
}

// TogglePoints switches point markers on every chart and runs a
// cycle. It returns the new setting.
func (v *View) TogglePoints() (bool, error) {
	if !v.begin("points toggle") {
		return v.asm.Points(), ErrBusy
	}
	defer v.end()
	v.asm.SetPoints(!v.asm.Points())
	v.update()
	return v.asm.Points(), nil
}

// SetAxisKind changes the scale of one axis of chart i (0-based) and
// runs a cycle.
func (v *View) SetAxisKind(i int, axis config.MarkAxis, kind config.AxisKind) error {
	if !v.begin("axis change") {
		return ErrBusy
	}
	defer v.end()
	if err := v.asm.SetAxisKind(i, axis, kind); err != nil {
		return err
	}
	v.update()
	return nil
}

// update runs one cycle. The guard must be held.
func (v *View) update() {
	if !v.updating {
		panic("view: update without guard")
	}
	v.stats.Cycles++
	c := &cycle{n: v.stats.Cycles}
	v.runCommands(c)
	v.assemble(c)
}

func (v *View) runCommands(c *cycle) {
	for _, tmpl := range v.doc.Commands {
		cmd := v.store.Substitute(tmpl)
		v.stats.Commands++
		res, err := v.run.Run(cmd)
		if err != nil {
			c.failures++
			v.stats.Failures++
			v.log.Printf("cycle %d: command failed: %v\n%s", c.n, err, indent(string(res.Output)))
			continue
		}
		v.debugf("cycle %d: %s\n%s", c.n, cmd, indent(string(res.Output)))
	}
	if c.failures > 0 {
		v.log.Printf("cycle %d: %d of %d commands failed", c.n, c.failures, len(v.doc.Commands))
	}
}

func (v *View) assemble(c *cycle) {
	charts, n := v.asm.Render()
	if d := v.asm.Declared(); n != d {
		panic(fmt.Sprintf("view: cycle %d rendered %+v, declared %+v", c.n, n, d))
	}
	v.charts = charts
	if v.controls != nil {
		v.controls.Show(charts)
	}
}

// indent returns s with each line indented by four spaces. If s is
// non-empty, the returned string is guaranteed to end in a "\n".
func indent(s string) string {
	if len(s) == 0 {
		return s
	}
	s = strings.TrimSuffix(s, "\n")
	return "    " + strings.Replace(s, "\n", "\n    ", -1) + "\n"
}
