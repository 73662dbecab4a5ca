// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aclements/odeview/chart"
	"github.com/aclements/odeview/config"
	"github.com/aclements/odeview/param"
	"github.com/aclements/odeview/render"
	"github.com/aclements/odeview/runner"
	"github.com/aclements/odeview/view"
	"github.com/kballard/go-shellquote"
)

// session is the console's state: the loaded views and the one
// commands apply to.
type session struct {
	out     io.Writer
	log     *log.Logger
	dir     string
	width   int
	height  int
	verbose bool

	views []*loaded
	cur   int
}

type loaded struct {
	name string
	v    *view.View
}

// load adds a view of the configuration at path and makes it current.
// If r is nil, commands run as child processes.
func (s *session) load(path string, r runner.Runner) error {
	l := &loaded{name: viewName(path)}
	v, err := view.Load(path, view.Options{
		Dir:      filepath.Dir(path),
		Runner:   r,
		Log:      s.log,
		Verbose:  s.verbose,
		Controls: &console{s, l},
	})
	if err != nil {
		return err
	}
	l.v = v
	s.views = append(s.views, l)
	s.cur = len(s.views) - 1
	return nil
}

// console shows one view's updates on the session's output.
type console struct {
	s *session
	l *loaded
}

func (c *console) Echo(e param.Echo) {
	switch e.To {
	case param.Slider:
		fmt.Fprintf(c.s.out, "%s: slider at %d\n", e.Label, e.Pos)
	case param.Text:
		fmt.Fprintf(c.s.out, "%s: %s\n", e.Label, e.Text)
	case param.ChoiceButton:
		fmt.Fprintf(c.s.out, "%s: %s selected\n", e.Label, e.Text)
	}
}

func (c *console) Show(charts []chart.Rendered) {
	for i, r := range charts {
		path := filepath.Join(c.s.dir, fmt.Sprintf("%s-%d.svg", c.l.name, i+1))
		if err := c.s.writeSVG(path, r); err != nil {
			c.s.log.Print(err)
		}
	}
}

func (s *session) writeSVG(path string, r chart.Rendered) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteSVG(f, r, s.width, s.height); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

var errUsage = errors.New("usage")

// exec runs one console command. It returns true if the session
// should end.
func (s *session) exec(line string) (quit bool, err error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	v := s.views[s.cur].v

	need := func(n int, usage string) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		return nil
	}

	switch args[0] {
	case "set", "slide", "pick":
		if err := need(3, args[0]+" <label> <value>"); err != nil {
			return false, err
		}
		src := map[string]param.Source{"set": param.Text, "slide": param.Slider, "pick": param.ChoiceButton}[args[0]]
		return false, v.Edit(args[1], args[2], src)

	case "points":
		on, err := v.TogglePoints()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "points %s\n", map[bool]string{true: "on", false: "off"}[on])

	case "axis":
		if err := need(4, "axis <chart> x|y num|log"); err != nil {
			return false, err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("bad chart number %q", args[1])
		}
		var axis config.MarkAxis
		switch args[2] {
		case "x":
			axis = config.Domain
		case "y":
			axis = config.Range
		default:
			return false, fmt.Errorf("axis must be x or y, not %q", args[2])
		}
		var kind config.AxisKind
		switch args[3] {
		case "num":
			kind = config.Linear
		case "log":
			kind = config.Log
		default:
			return false, fmt.Errorf("axis kind must be num or log, not %q", args[3])
		}
		return false, v.SetAxisKind(n-1, axis, kind)

	case "view":
		if len(args) == 1 {
			for i, l := range s.views {
				mark := " "
				if i == s.cur {
					mark = "*"
				}
				fmt.Fprintf(s.out, "%s %d %s: %s\n", mark, i+1, l.name, l.v.Title())
				if d := l.v.Description(); d != "" {
					fmt.Fprintf(s.out, "      %s\n", d)
				}
			}
			return false, nil
		}
		if err := need(2, "view [n]"); err != nil {
			return false, err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(s.views) {
			return false, fmt.Errorf("no view %q", args[1])
		}
		s.cur = n - 1

	case "params":
		for _, p := range v.Params() {
			switch p := p.(type) {
			case *param.Numeric:
				lo, hi, tick := p.SliderRange()
				fmt.Fprintf(s.out, "%s = %s [%g, %g] step %g (slider %d in %d..%d by %d)\n",
					p.Name, p.Format(), p.Min, p.Max, p.Snap, p.SliderPos(), lo, hi, tick)
			case *param.Choice:
				fmt.Fprintf(s.out, "%s = %s %v\n", p.Name, p.Selected, p.Options)
			default:
				panic(fmt.Sprintf("unknown parameter type %T", p))
			}
		}

	case "stats":
		st := v.Stats()
		fmt.Fprintf(s.out, "%d cycles, %d commands, %d failed, %d changes dropped\n", st.Cycles, st.Commands, st.Failures, st.Dropped)

	case "dump":
		return false, render.WriteYAML(s.out, v.Charts())

	case "quit", "exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}
