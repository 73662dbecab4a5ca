// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"
)

// fields splits a directive into tokens. Tokens are separated by
// spaces and tabs, except that a single- or double-quoted string is
// one token (without its quotes), and a bracketed range is one token
// with its inner spaces removed.
func fields(line string) ([]string, error) {
	var (
		toks  []string
		tok   strings.Builder
		inTok bool
	)
	flush := func() {
		if inTok {
			toks = append(toks, tok.String())
			tok.Reset()
			inTok = false
		}
	}
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case ' ', '\t', '\r', '\n':
			flush()

		case '"', '\'':
			end := strings.IndexByte(line[i+1:], c)
			if end < 0 {
				return nil, structural("unterminated %c quote", c)
			}
			tok.WriteString(line[i+1 : i+1+end])
			inTok = true
			i += end + 1

		case '[':
			end := strings.IndexByte(line[i:], ']')
			if end < 0 {
				return nil, structural("unterminated range")
			}
			for _, r := range line[i : i+end+1] {
				if r != ' ' && r != '\t' {
					tok.WriteRune(r)
				}
			}
			inTok = true
			i += end

		default:
			tok.WriteByte(c)
			inTok = true
		}
	}
	flush()
	return toks, nil
}

// rest returns the text of line after its first token.
func rest(line string) string {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i:])
}
