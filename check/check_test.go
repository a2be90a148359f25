// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package check

import (
	"errors"
	"testing"

	"github.com/ericwq/vtline/terminal"
)

func newState(output string) *terminal.Interpreter {
	it := terminal.NewInterpreter(0)
	it.Write([]byte(output))
	return it
}

func TestCheck(t *testing.T) {
	tc := []struct {
		label  string
		output string
		opts   []Option
		field  Field
		ok     bool
	}{
		{"nothing to check", "abc", nil, 0, true},
		{"all match", "Hello\b\bp!", []Option{Buffer("Help!"), Cursor(5), Bells(0)}, 0, true},
		{"buffer strict mismatch", "ab  ", []Option{Buffer("ab")}, FieldBuffer, false},
		{"buffer tolerant match", "ab  ", []Option{Buffer("ab"), WithMode(Tolerant)}, 0, true},
		{"tolerant trims expectation", "ab", []Option{Buffer("ab   "), WithMode(Tolerant)}, 0, true},
		{"tolerant keeps leading", " ab", []Option{Buffer("ab"), WithMode(Tolerant)}, FieldBuffer, false},
		{"cursor mismatch", "abc\b", []Option{Buffer("abc"), Cursor(3)}, FieldCursor, false},
		{"bell mismatch", "a\a\a", []Option{Cursor(1), Bells(1)}, FieldBell, false},
		{"buffer checked first", "xy\a", []Option{Buffer("z"), Cursor(9), Bells(5)}, FieldBuffer, false},
	}

	for _, v := range tc {
		err := Check(newState(v.output), v.opts...)
		if v.ok {
			if err != nil {
				t.Errorf("#test %q expect success, got %s\n", v.label, err)
			}
			continue
		}

		var m *Mismatch
		if !errors.As(err, &m) {
			t.Errorf("#test %q expect *Mismatch, got %v\n", v.label, err)
			continue
		}
		if m.Field != v.field {
			t.Errorf("#test %q expect field %s, got %s\n", v.label, v.field, m.Field)
		}
	}
}

func TestMismatchMessage(t *testing.T) {
	err := Check(newState("abc"), Cursor(1))
	expect := "Assert failed - cursor position mismatch: expected [1], found [3]."
	if err == nil || err.Error() != expect {
		t.Errorf("#test message expect %q, got %v\n", expect, err)
	}
}

func TestBellReset(t *testing.T) {
	s := newState("\a\a")

	// unchecked steps accumulate
	s.Write([]byte("\a"))
	if err := Check(s, Cursor(0)); err != nil {
		t.Errorf("#test cursor only check got %s\n", err)
	}
	if s.BellCount() != 3 {
		t.Errorf("#test bells should accumulate, got %d\n", s.BellCount())
	}

	// keep the counter when asked
	if err := Check(s, Bells(3), KeepBells()); err != nil {
		t.Errorf("#test keep bells got %s\n", err)
	}
	if s.BellCount() != 3 {
		t.Errorf("#test KeepBells should not reset, got %d\n", s.BellCount())
	}

	// a failed bell check still consumes the count
	if err := Check(s, Bells(1)); err == nil {
		t.Errorf("#test bell check expect mismatch\n")
	}
	if s.BellCount() != 0 {
		t.Errorf("#test failed bell check should reset, got %d\n", s.BellCount())
	}

	s.Write([]byte("\a"))
	if err := Check(s, Bells(1)); err != nil || s.BellCount() != 0 {
		t.Errorf("#test bell check got %v, count %d\n", err, s.BellCount())
	}
}

func TestEarlyMismatchKeepsBells(t *testing.T) {
	s := newState("a\a")
	Check(s, Buffer("b"), Bells(1))
	if s.BellCount() != 1 {
		t.Errorf("#test bell check not reached, count expect 1, got %d\n", s.BellCount())
	}
}
