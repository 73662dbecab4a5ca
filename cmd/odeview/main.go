// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command odeview interactively re-runs a parameterized simulation
// and plots its output.
//
// Usage:
//
//	odeview [-o dir] [-width N] [-height N] [-v] [config.cfg...]
//
// Each configuration file declares parameters, the commands that
// regenerate the simulation's data files, and the charts to draw from
// those files. odeview loads each file into an independent view, runs
// its commands once, and writes every chart of the view to
// <dir>/<view>-<n>.svg, where <view> is the configuration file's base
// name. Commands run in the configuration file's directory, and data
// paths are relative to it.
//
// odeview then reads commands from standard input. Every change
// re-runs the current view's commands and rewrites its charts:
//
//	set <label> <value>       set a parameter as if typed
//	slide <label> <pos>       set a parameter as if by a slider (pos = value*100)
//	pick <label> <option>     select an option of a choice
//	points                    toggle point markers
//	axis <chart> x|y num|log  change the scale of an axis
//	view [n]                  list views with their descriptions, or select view n
//	params                    list parameters of the current view
//	stats                     show update counters
//	dump                      print the current charts as YAML
//	quit
//
// If no configuration file is given and standard input is a terminal,
// odeview prompts for one.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/odeview/render"
	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	log.SetPrefix("odeview: ")
	log.SetFlags(0)

	var (
		flagOut     = flag.String("o", ".", "write charts to `dir`")
		flagWidth   = flag.Int("width", render.Width, "chart width in pixels")
		flagHeight  = flag.Int("height", render.Height, "chart height in pixels")
		flagVerbose = flag.Bool("v", false, "log command output and dropped changes")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [config.cfg...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	interactive := os.Getenv("TERM") != "dumb" && terminal.IsTerminal(int(os.Stdin.Fd()))
	in := bufio.NewScanner(os.Stdin)

	paths := flag.Args()
	if len(paths) == 0 {
		if !interactive {
			flag.Usage()
			os.Exit(2)
		}
		fmt.Print("configuration file: ")
		if !in.Scan() {
			os.Exit(1)
		}
		path := strings.TrimSpace(in.Text())
		if path == "" {
			os.Exit(1)
		}
		paths = []string{path}
	}

	if err := os.MkdirAll(*flagOut, 0777); err != nil {
		log.Fatal(err)
	}
	s := &session{
		out:     os.Stdout,
		log:     log.Default(),
		dir:     *flagOut,
		width:   *flagWidth,
		height:  *flagHeight,
		verbose: *flagVerbose,
	}
	for _, path := range paths {
		if err := s.load(path, nil); err != nil {
			log.Fatal(err)
		}
	}

	prompt := ""
	if interactive {
		prompt = "odeview> "
	}
	if err := s.loop(in, prompt); err != nil && err != io.EOF {
		log.Fatal(err)
	}
}

// loop reads and runs console commands until quit or the end of in.
func (s *session) loop(in *bufio.Scanner, prompt string) error {
	for {
		fmt.Fprint(s.out, prompt)
		if !in.Scan() {
			if prompt != "" {
				fmt.Fprintln(s.out)
			}
			if err := in.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		quit, err := s.exec(in.Text())
		if err != nil {
			s.log.Print(err)
		}
		if quit {
			return nil
		}
	}
}

// viewName returns the name charts of the configuration at path are
// written under.
func viewName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
