// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config parses odeview configuration files.
//
// A configuration file is a sequence of directives, one per line.
// Each directive starts with a keyword:
//
//	title <text>
//	description <text>
//	parameter <label> <min> <default> <max> <snap>
//	choice <label> <option>...
//	run <command>
//	file <alias> <path> [skip <N>]
//	profile <alias> (hex #RRGGBB | rgb R:G:B | named <color>) weight <W> (solid|dashed)
//	set filetype (csv|dat)
//	plot xaxis (num|log) <range> <label> yaxis (num|log) <range> <label>
//	series <alias> <X:Y> <any> (<title>|notitle) <any> <profile>
//	static series <alias> <X:Y> <any> <title> <any> <profile>
//	mark (x|y) <value> (foreground|background) <any> <profile>
//	error (diff|abs|rel) <alias> <X:Y> <any> <alias> <X:Y> <any> <profile>
//
// Commands in run directives refer to parameters as $label. A range
// is [lo:hi], [lo:step:hi] or [::] for automatic. Lines starting with
// # are comments.
//
// Document order matters: plot and error directives each open a
// chart, and the series, static series and mark directives that
// follow a plot belong to it. The tokens marked <any> above are
// accepted without validation.
package config
