// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"io"

	"github.com/aclements/odeview/chart"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes charts to w as a YAML sequence, one document for
// all charts.
func WriteYAML(w io.Writer, charts []chart.Rendered) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(charts); err != nil {
		return err
	}
	return enc.Close()
}
