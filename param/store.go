// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Source identifies the control surface an edit came from.
type Source int

const (
	// Slider edits carry an integer slider position.
	Slider Source = iota
	// Text edits carry a float literal typed by the user.
	Text
	// ChoiceButton edits carry one of a Choice's options.
	ChoiceButton
)

func (s Source) String() string {
	switch s {
	case Slider:
		return "slider"
	case Text:
		return "text"
	case ChoiceButton:
		return "choice"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

var (
	// ErrUnknown is returned for an edit of an undeclared label.
	ErrUnknown = errors.New("unknown parameter")

	// ErrBadValue is returned when an edit's raw value cannot be
	// applied to the parameter.
	ErrBadValue = errors.New("bad parameter value")
)

// Echo describes the value that must be pushed into the control
// surface that did not receive an edit, so both surfaces agree.
type Echo struct {
	Label string

	// To is the surface to update. For a Choice edit it is
	// ChoiceButton and there is nothing to push.
	To Source

	// Text is the formatted value for a Text echo.
	Text string

	// Pos is the slider position for a Slider echo.
	Pos int
}

// Store holds the live value of every declared parameter.
//
// Store is not safe for concurrent use. Its owner mutates it only
// inside a guarded update cycle.
type Store struct {
	order  []Param
	byName map[string]Param
}

// NewStore returns a Store holding params in declared order. Labels
// must be unique.
func NewStore(params []Param) (*Store, error) {
	s := &Store{byName: make(map[string]Param, len(params))}
	for _, p := range params {
		if _, ok := s.byName[p.Label()]; ok {
			return nil, fmt.Errorf("duplicate parameter %q", p.Label())
		}
		s.byName[p.Label()] = p
		s.order = append(s.order, p)
	}
	return s, nil
}

// Params returns the parameters in declared order.
func (s *Store) Params() []Param {
	return s.order
}

// Get returns the parameter named label, or nil.
func (s *Store) Get(label string) Param {
	return s.byName[label]
}

// Set applies an edit of label from surface src and returns the echo
// for the other surface.
//
// A Slider edit's raw value is the slider position; its value is
// pos/SliderFactor. A Text edit's raw value is a float literal. Both
// are snapped with Numeric.SnapValue. A ChoiceButton edit must name
// one of the Choice's options.
func (s *Store) Set(label, raw string, src Source) (Echo, error) {
	p, ok := s.byName[label]
	if !ok {
		return Echo{}, fmt.Errorf("%w %q", ErrUnknown, label)
	}
	raw = strings.TrimSpace(raw)

	switch p := p.(type) {
	case *Numeric:
		var v float64
		switch src {
		case Slider:
			pos, err := strconv.Atoi(raw)
			if err != nil {
				return Echo{}, fmt.Errorf("%w: %s: slider position %q", ErrBadValue, label, raw)
			}
			v = float64(pos) / SliderFactor
		case Text:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return Echo{}, fmt.Errorf("%w: %s: %q is not a finite number", ErrBadValue, label, raw)
			}
			v = f
		default:
			return Echo{}, fmt.Errorf("%w: %s is numeric, edited from %v", ErrBadValue, label, src)
		}
		p.Value = p.SnapValue(v)
		if src == Slider {
			return Echo{Label: label, To: Text, Text: p.Format()}, nil
		}
		return Echo{Label: label, To: Slider, Pos: p.SliderPos()}, nil

	case *Choice:
		if !p.Has(raw) {
			return Echo{}, fmt.Errorf("%w: %s has no option %q", ErrBadValue, label, raw)
		}
		p.Selected = raw
		return Echo{Label: label, To: ChoiceButton, Text: raw}, nil

	default:
		panic(fmt.Sprintf("unknown parameter type %T", p))
	}
}

// Substitute replaces every $label in cmd with the current value of
// that parameter. Longer labels are replaced first, so $ab is not
// mistaken for $a followed by "b".
func (s *Store) Substitute(cmd string) string {
	if len(s.order) == 0 {
		return cmd
	}
	params := append([]Param(nil), s.order...)
	sort.SliceStable(params, func(i, j int) bool {
		return len(params[i].Label()) > len(params[j].Label())
	})
	pairs := make([]string, 0, 2*len(params))
	for _, p := range params {
		var val string
		switch p := p.(type) {
		case *Numeric:
			val = p.Format()
		case *Choice:
			val = p.Selected
		default:
			panic(fmt.Sprintf("unknown parameter type %T", p))
		}
		pairs = append(pairs, "$"+p.Label(), val)
	}
	return strings.NewReplacer(pairs...).Replace(cmd)
}
