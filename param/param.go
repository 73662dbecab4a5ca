// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param models the tunable parameters of a simulation view
// and keeps the two control surfaces of a numeric parameter (a
// snapped slider and a free-text field) in agreement.
//
// A parameter is either a *Numeric or a *Choice. The set is closed:
// code that consumes a Param switches over both types and panics on
// anything else.
package param

import (
	"fmt"
	"math"
	"strconv"
)

// SliderFactor is the scale between a slider's integer position and
// the float value it represents. It limits slider-originated values
// to two decimal digits.
const SliderFactor = 100.0

// A Param is a *Numeric or a *Choice.
type Param interface {
	// Label returns the unique name of this parameter. Commands
	// refer to it as $label.
	Label() string

	// String returns the current value as it is substituted into
	// commands.
	String() string

	isParam()
}

// Numeric is a bounded float parameter that snaps to a fixed
// increment.
type Numeric struct {
	Name              string
	Min, Max, Default float64
	Snap              float64
	Value             float64
}

// NewNumeric returns a Numeric set to its default value. It returns
// an error if the bounds are inverted, the default is out of bounds,
// or snap is not positive.
func NewNumeric(label string, min, def, max, snap float64) (*Numeric, error) {
	switch {
	case !(min <= max):
		return nil, fmt.Errorf("parameter %s: min %g greater than max %g", label, min, max)
	case !(min <= def && def <= max):
		return nil, fmt.Errorf("parameter %s: default %g outside [%g, %g]", label, def, min, max)
	case !(snap > 0) || math.IsInf(snap, 0):
		return nil, fmt.Errorf("parameter %s: snap %g must be positive", label, snap)
	}
	return &Numeric{Name: label, Min: min, Max: max, Default: def, Snap: snap, Value: def}, nil
}

func (p *Numeric) Label() string { return p.Name }

func (p *Numeric) String() string { return p.Format() }

func (*Numeric) isParam() {}

// Format returns the shortest decimal form of p's value.
func (p *Numeric) Format() string {
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

// SnapValue returns raw moved to the nearest point of p's snap grid
// and clamped to [Min, Max]:
//
//	clamp(Min + round((raw-Min)/Snap)*Snap, Min, Max)
//
// Floating-point noise left by the multiplication is removed by
// rounding to 12 significant digits.
func (p *Numeric) SnapValue(raw float64) float64 {
	v := p.Min + math.Round((raw-p.Min)/p.Snap)*p.Snap
	v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if v < p.Min {
		v = p.Min
	}
	if v > p.Max {
		v = p.Max
	}
	return v
}

// SliderPos returns the slider position that represents p's value.
func (p *Numeric) SliderPos() int {
	return int(math.Round(p.Value * SliderFactor))
}

// SliderRange returns the integer bounds and tick spacing of a slider
// for p.
func (p *Numeric) SliderRange() (min, max, tick int) {
	pos := func(v float64) int { return int(math.Round(v * SliderFactor)) }
	return pos(p.Min), pos(p.Max), pos(p.Snap)
}

// Choice is a parameter that takes one of a fixed list of strings.
type Choice struct {
	Name     string
	Options  []string
	Selected string
}

// NewChoice returns a Choice with the first option selected.
func NewChoice(label string, options ...string) (*Choice, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("choice %s: no options", label)
	}
	return &Choice{Name: label, Options: options, Selected: options[0]}, nil
}

func (p *Choice) Label() string { return p.Name }

func (p *Choice) String() string { return p.Selected }

func (*Choice) isParam() {}

// Has reports whether opt is one of p's options.
func (p *Choice) Has(opt string) bool {
	for _, o := range p.Options {
		if o == opt {
			return true
		}
	}
	return false
}
