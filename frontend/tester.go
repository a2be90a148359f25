// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ericwq/vtline/check"
	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/lineedit"
	"github.com/ericwq/vtline/terminal"
	"github.com/ericwq/vtline/util"
)

// Target is a line editor driven through its keyboard and observed through
// the virtual terminal fed by its output.
type Target interface {
	check.State
	Input(seq []byte) error
	Ended() bool
	History() []string
	Finish(timeout time.Duration) error
	Close() error
}

type TesterOptions struct {
	Capacity int
	Settle   time.Duration
	Idle     time.Duration
	Spawn    SpawnOptions
}

// Tester runs the program under test and replays its output on a virtual
// terminal. The embedded interpreter gives access to the terminal state.
type Tester struct {
	*terminal.Interpreter
	proc   *Process
	settle time.Duration
	idle   time.Duration
	steps  int
}

// NewTester starts argv and consumes the initial output, usually the
// prompt. A protocol violation in that output is returned as error.
func NewTester(ctx context.Context, argv []string, opt TesterOptions) (*Tester, error) {
	proc, err := Spawn(ctx, argv, opt.Spawn)
	if err != nil {
		return nil, err
	}

	t := &Tester{
		Interpreter: terminal.NewInterpreter(opt.Capacity),
		proc:        proc,
		settle:      opt.Settle,
		idle:        opt.Idle,
	}
	if err := t.collect(); err != nil {
		proc.Close()
		return nil, err
	}
	return t, nil
}

// Input sends seq to the program, then feeds whatever it prints to the
// terminal. The returned error is either an I/O failure or a
// *terminal.CursorError, both end the session.
func (t *Tester) Input(seq []byte) error {
	t.steps++
	util.Logger.Debug("input", "step", t.steps, "seq", fmt.Sprintf("%q", seq))

	if _, err := t.proc.Write(seq); err != nil {
		return fmt.Errorf("write input: %w", err)
	}
	return t.collect()
}

func (t *Tester) collect() error {
	out, err := t.proc.Drain(t.settle, t.idle)
	util.Logger.Trace("drain", "pid", t.proc.Pid(), "size", len(out), "chunk", fmt.Sprintf("%q", out))

	if _, herr := t.Interpreter.Write(out); herr != nil {
		return herr
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read output: %w", err)
	}
	return nil
}

func (t *Tester) Check(opts ...check.Option) error {
	return check.Check(t, opts...)
}

// Test is Input followed by Check.
func (t *Tester) Test(seq []byte, opts ...check.Option) error {
	if err := t.Input(seq); err != nil {
		return err
	}
	return t.Check(opts...)
}

func (t *Tester) Ended() bool {
	return t.proc.Exited()
}

// Finish sends input-end and waits up to timeout for the program to exit.
// ErrNotExited means it ignored the request.
func (t *Tester) Finish(timeout time.Duration) error {
	if !t.proc.Exited() {
		if _, err := t.proc.Write([]byte(keys.InputEnd)); err != nil {
			util.Logger.Debug("send input end", "error", err)
		}
	}
	err := t.proc.Wait(timeout)
	if errors.Is(err, ErrNotExited) {
		return err
	}
	// drain the farewell output, it may still violate the protocol
	if cerr := t.collect(); cerr != nil {
		var ce *terminal.CursorError
		if errors.As(cerr, &ce) {
			return cerr
		}
	}
	if err != nil {
		util.Logger.Debug("program exit status", "error", err)
	}
	return nil
}

func (t *Tester) Close() error {
	return t.proc.Close()
}

// Loopback drives the built-in line editor in process. Its output goes
// straight into the terminal, no drain is needed.
type Loopback struct {
	*terminal.Interpreter
	editor *lineedit.Editor
	ended  bool
}

func NewLoopback(table *keys.Table, capacity int, opts ...lineedit.Option) (*Loopback, error) {
	l := &Loopback{Interpreter: terminal.NewInterpreter(capacity)}
	l.editor = lineedit.New(table, l.Interpreter, opts...)
	if err := l.editor.Start(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loopback) Input(seq []byte) error {
	if l.ended {
		return fmt.Errorf("write input: %w", io.ErrClosedPipe)
	}
	ended, err := l.editor.Feed(seq)
	l.ended = ended
	return err
}

func (l *Loopback) Check(opts ...check.Option) error {
	return check.Check(l, opts...)
}

func (l *Loopback) Ended() bool { return l.ended }

func (l *Loopback) Finish(timeout time.Duration) error {
	if !l.ended {
		if err := l.Input([]byte(keys.InputEnd)); err != nil {
			return err
		}
	}
	if !l.ended {
		return ErrNotExited
	}
	return nil
}

func (l *Loopback) Close() error { return nil }
