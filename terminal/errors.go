// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"errors"
	"fmt"
)

var (
	ErrCursorUnderflow = errors.New("cursor underflow")
	ErrCursorOverflow  = errors.New("cursor overflow")
)

type Violation int

const (
	Underflow Violation = iota
	Overflow
)

func (v Violation) String() string {
	if v == Overflow {
		return "overflow"
	}
	return "underflow"
}

// CursorError reports output that no real terminal state can explain: the
// monitored program moved the cursor left of column 0 or past the buffer
// capacity. Replaying further bytes is meaningless after it.
type CursorError struct {
	Kind    Violation
	Current int
	Dest    int
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("cannot move cursor from %d to %d", e.Current, e.Dest)
}

func (e *CursorError) Unwrap() error {
	if e.Kind == Overflow {
		return ErrCursorOverflow
	}
	return ErrCursorUnderflow
}
