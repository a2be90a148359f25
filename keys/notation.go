// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadSequence = errors.New("bad key sequence")
	ErrBadNotation = errors.New("bad key notation")
)

const spaceGlyph = "␣"

// Encode converts the symbolic notation into the raw bytes sent to the
// monitored process. Literal text is copied as is, "<name>" expands to the
// named key, "<name*N>" repeats it N times and "<lt>" is a literal '<'.
//
//	"Hello<backspace*2>p!" => "Hello\x7f\x7fp!"
func (t *Table) Encode(notation string) ([]byte, error) {
	var out []byte

	for i := 0; i < len(notation); i++ {
		if notation[i] != '<' {
			out = append(out, notation[i])
			continue
		}

		end := strings.IndexByte(notation[i:], '>')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated %q", ErrBadNotation, notation[i:])
		}
		inner := notation[i+1 : i+end]
		i += end

		name, count, err := splitRepeat(inner)
		if err != nil {
			return nil, err
		}

		var seq string
		if name == "lt" {
			seq = "<"
		} else {
			k, ok := t.byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown key %q", ErrBadNotation, name)
			}
			seq = k.Seq
		}
		for j := 0; j < count; j++ {
			out = append(out, seq...)
		}
	}
	return out, nil
}

func splitRepeat(inner string) (name string, count int, err error) {
	name, rep, found := strings.Cut(inner, "*")
	if name == "" {
		return "", 0, fmt.Errorf("%w: empty key name", ErrBadNotation)
	}
	if !found {
		return name, 1, nil
	}

	count, err = strconv.Atoi(rep)
	if err != nil || count < 1 {
		return "", 0, fmt.Errorf("%w: bad repeat count %q", ErrBadNotation, rep)
	}
	return name, count, nil
}

// Display renders a raw key sequence in human-readable form, each key
// followed by a space.
func (t *Table) Display(seq string) (string, error) {
	var out strings.Builder
	var pending strings.Builder
	escMode := false

	for _, ch := range seq {
		if ch < 0x20 || ch == 0x7f || ch == ' ' || escMode {
			if string(ch) == Esc {
				escMode = true
			}
			pending.WriteRune(ch)

			glyph, ok := t.glyph(pending.String())
			if ok {
				out.WriteString(glyph)
				out.WriteByte(' ')
				pending.Reset()
				escMode = false
			}
			continue
		}

		out.WriteRune(ch)
		out.WriteByte(' ')
	}

	if pending.Len() > 0 {
		return out.String(), fmt.Errorf("%w: %q", ErrBadSequence, pending.String())
	}
	return out.String(), nil
}

func (t *Table) glyph(seq string) (string, bool) {
	if seq == " " {
		return spaceGlyph, true
	}
	if k, ok := t.bySeq[seq]; ok {
		return k.Glyph, true
	}
	return "", false
}
