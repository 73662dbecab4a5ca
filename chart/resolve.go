// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"

	"github.com/aclements/odeview/config"
)

// Stroke is a resolved line profile.
type Stroke struct {
	Color  color.RGBA
	Width  float64
	Dashed bool
}

// Hex returns s's color as #rrggbb.
func (s Stroke) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}

// MarshalYAML writes the color in hex form.
func (s Stroke) MarshalYAML() (interface{}, error) {
	return struct {
		Color  string  `yaml:"color"`
		Width  float64 `yaml:"width"`
		Dashed bool    `yaml:"dashed,omitempty"`
	}{s.Hex(), s.Width, s.Dashed}, nil
}

// Resolver looks up line profiles by name.
type Resolver struct {
	profiles map[string]*config.Profile
}

// NewResolver returns a Resolver over profiles.
func NewResolver(profiles map[string]*config.Profile) *Resolver {
	return &Resolver{profiles}
}

// Profile returns the stroke for the named profile. An unknown name
// is a structural error.
func (r *Resolver) Profile(name string) (Stroke, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Stroke{}, fmt.Errorf("%w: unknown profile %q", config.ErrStructural, name)
	}
	return Stroke{Color: p.Color, Width: p.Weight, Dashed: p.Style == config.Dashed}, nil
}

// Mark resolves m's profile.
func (r *Resolver) Mark(m *config.Mark) (RenderedMark, error) {
	s, err := r.Profile(m.Profile)
	if err != nil {
		return RenderedMark{}, err
	}
	return RenderedMark{Axis: m.Axis, Value: m.Value, Layer: m.Layer, Stroke: s}, nil
}
