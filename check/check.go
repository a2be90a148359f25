// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package check

import (
	"fmt"
	"strings"
	"unicode"
)

// State is the observable display state of one monitored program.
type State interface {
	Buffer(trim bool) string
	Cursor() int
	BellCount() int
	ResetBells()
}

type Field int

const (
	FieldBuffer Field = iota
	FieldCursor
	FieldBell
)

func (f Field) String() string {
	switch f {
	case FieldBuffer:
		return "buffer"
	case FieldCursor:
		return "cursor"
	case FieldBell:
		return "bell"
	}
	return "unknown"
}

var labels = map[Field]string{
	FieldBuffer: "buffer mismatch",
	FieldCursor: "cursor position mismatch",
	FieldBell:   "bell count mismatch",
}

// Mismatch is a failed expectation. Unlike a protocol violation it is
// recoverable: the driver reports it and moves on to the next step.
type Mismatch struct {
	Field    Field
	Expected any
	Found    any
	Label    string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("Assert failed - %s: expected [%v], found [%v].", m.Label, m.Expected, m.Found)
}

type Mode int

const (
	Strict Mode = iota
	Tolerant
)

type expectation struct {
	buffer    *string
	cursor    *int
	bells     *int
	keepBells bool
	mode      Mode
}

type Option func(*expectation)

func Buffer(s string) Option { return func(e *expectation) { e.buffer = &s } }
func Cursor(n int) Option    { return func(e *expectation) { e.cursor = &n } }
func Bells(n int) Option     { return func(e *expectation) { e.bells = &n } }

// KeepBells leaves the bell counter untouched after a bell check.
func KeepBells() Option { return func(e *expectation) { e.keepBells = true } }

// WithMode selects how buffers are compared, Strict is the default.
func WithMode(m Mode) Option { return func(e *expectation) { e.mode = m } }

// Check compares s against the supplied expectations in the order buffer,
// cursor, bell count and returns the first *Mismatch. Fields without an
// expectation are not checked. Reaching the bell check resets the counter
// unless KeepBells is given, whatever the outcome.
func Check(s State, opts ...Option) error {
	var e expectation
	for _, opt := range opts {
		opt(&e)
	}

	if e.buffer != nil {
		expected, found := *e.buffer, s.Buffer(true)
		if e.mode == Tolerant {
			expected, found = rtrim(expected), rtrim(found)
		}
		if expected != found {
			return &Mismatch{FieldBuffer, expected, found, labels[FieldBuffer]}
		}
	}

	if e.cursor != nil {
		if found := s.Cursor(); found != *e.cursor {
			return &Mismatch{FieldCursor, *e.cursor, found, labels[FieldCursor]}
		}
	}

	if e.bells != nil {
		found := s.BellCount()
		if !e.keepBells {
			s.ResetBells()
		}
		if found != *e.bells {
			return &Mismatch{FieldBell, *e.bells, found, labels[FieldBell]}
		}
	}
	return nil
}

func rtrim(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
