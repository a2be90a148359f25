// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

const DefaultCapacity = 1000

// LineBuffer is the visible input line: the cells written so far, an
// explicit logical length and the cursor column. At most capacity-1 cells
// are usable, the last slot is reserved as the end-of-line boundary.
type LineBuffer struct {
	cells    []byte
	length   int
	cursor   int // 0 <= cursor <= length
	capacity int
}

func NewLineBuffer(capacity int) *LineBuffer {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &LineBuffer{
		cells:    make([]byte, 0, min(capacity, 256)),
		capacity: capacity,
	}
}

func (b *LineBuffer) Len() int    { return b.length }
func (b *LineBuffer) Cursor() int { return b.cursor }
func (b *LineBuffer) Cap() int    { return b.capacity }

// Bytes returns a copy of the logical content.
func (b *LineBuffer) Bytes() []byte {
	ret := make([]byte, b.length)
	copy(ret, b.cells[:b.length])
	return ret
}

// Content returns the logical content as text. With trim set, trailing
// spaces are removed, but only those strictly right of the cursor cell: a
// space under the cursor or left of it stays.
//
//	"abc  " cursor=3 => "abc "
//	"ab  "  cursor=1 => "ab"
//	"ab  "  cursor=4 => "ab  "
func (b *LineBuffer) Content(trim bool) string {
	pos := b.length
	if trim {
		for pos > 0 && b.cells[pos-1] == ' ' && b.cursor < pos-1 {
			pos--
		}
	}
	return string(b.cells[:pos])
}

// put overwrites the cell under the cursor and advances the cursor. Writing
// at the logical end grows the line by one.
func (b *LineBuffer) put(c byte) error {
	if b.cursor > b.capacity-2 {
		return &CursorError{Kind: Overflow, Current: b.cursor, Dest: b.cursor + 1}
	}

	if b.cursor == b.length {
		b.cells = append(b.cells[:b.length], c)
		b.length++
	} else {
		b.cells[b.cursor] = c
	}
	b.cursor++
	return nil
}

// back moves the cursor one cell left without touching the content.
func (b *LineBuffer) back() error {
	if b.cursor == 0 {
		return &CursorError{Kind: Underflow, Current: 0, Dest: -1}
	}
	b.cursor--
	return nil
}

func (b *LineBuffer) reset() {
	b.cells = b.cells[:0]
	b.length = 0
	b.cursor = 0
}
