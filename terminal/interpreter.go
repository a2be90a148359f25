// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

const (
	BEL = 0x07
	BS  = 0x08
	LF  = 0x0a
)

// Interpreter replays the output of a line editing program and keeps what a
// real terminal would show for the current line. Only BEL, BS and LF are
// control bytes, everything else overwrites the cell under the cursor.
type Interpreter struct {
	buf     *LineBuffer
	bells   int
	history History
	raw     []byte // raw output since the beginning of the current line
}

func NewInterpreter(capacity int) *Interpreter {
	return &Interpreter{buf: NewLineBuffer(capacity)}
}

// Handle consumes one output byte. A *CursorError is fatal for the session.
func (it *Interpreter) Handle(b byte) error {
	it.raw = append(it.raw, b)

	switch b {
	case BEL:
		it.bells++
	case BS:
		return it.buf.back()
	case LF:
		it.history.Append(it.buf.Content(false))
		it.buf.reset()
		it.raw = it.raw[:0]
	default:
		return it.buf.put(b)
	}
	return nil
}

// Write feeds p byte by byte and stops at the first protocol violation. n is
// the number of bytes consumed, including the offending one.
func (it *Interpreter) Write(p []byte) (n int, err error) {
	for i := range p {
		if err = it.Handle(p[i]); err != nil {
			return i + 1, err
		}
	}
	return len(p), nil
}

func (it *Interpreter) Buffer(trim bool) string { return it.buf.Content(trim) }
func (it *Interpreter) Cursor() int             { return it.buf.Cursor() }
func (it *Interpreter) Len() int                { return it.buf.Len() }
func (it *Interpreter) Cap() int                { return it.buf.Cap() }
func (it *Interpreter) BellCount() int          { return it.bells }
func (it *Interpreter) ResetBells()             { it.bells = 0 }

// History returns a copy of the completed lines.
func (it *Interpreter) History() []string { return it.history.Lines() }

// Raw returns a copy of the raw output of the current line.
func (it *Interpreter) Raw() []byte {
	ret := make([]byte, len(it.raw))
	copy(ret, it.raw)
	return ret
}
