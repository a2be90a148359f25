// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericwq/vtline/check"
	"github.com/ericwq/vtline/frontend"
	"github.com/ericwq/vtline/util"
)

// Screen is a snapshot of the virtual line, untrimmed.
type Screen struct {
	Buffer string
	Cursor int
}

func snapshot(t frontend.Target) Screen {
	return Screen{Buffer: t.Buffer(false), Cursor: t.Cursor()}
}

type StepResult struct {
	Index  int // 1-based
	Input  string
	Screen Screen
	Err    error // *check.Mismatch or nil
}

type CrossResult struct {
	Index int
	Input string
	Ref   Screen
	Test  Screen
	Err   error
}

type Summary struct {
	Name      string
	Total     int
	Succeeded int
	Failed    int
	Seed      uint64 // cross runs only
}

func (s Summary) Passed() bool { return s.Failed == 0 && s.Total == s.Succeeded }

// Reporter receives the progress of a run.
type Reporter interface {
	Step(r StepResult)
	CrossStep(r CrossResult)
	Finish(s Summary)
}

// Run replays the suite on target. A mismatch is reported and counted,
// the replay goes on. A protocol violation or an I/O failure aborts the
// replay and is returned together with the partial summary.
func Run(ctx context.Context, target frontend.Target, suite *Suite, rep Reporter) (Summary, error) {
	sum := Summary{Name: suite.Name}
	mode := check.Tolerant
	if suite.Strict {
		mode = check.Strict
	}

	for i, s := range suite.Steps {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if err := target.Input([]byte(s.Input)); err != nil {
			return sum, fmt.Errorf("step %d: %w", i+1, err)
		}

		err := check.Check(target,
			check.Buffer(suite.Prompt+s.Buffer),
			check.Cursor(len(suite.Prompt)+s.Cursor),
			check.Bells(s.Bells),
			check.WithMode(mode))

		var mismatch *check.Mismatch
		if err != nil && !errors.As(err, &mismatch) {
			return sum, fmt.Errorf("step %d: %w", i+1, err)
		}

		sum.Total++
		if err == nil {
			sum.Succeeded++
		} else {
			sum.Failed++
			util.Logger.Debug("step failed", "suite", suite.Name, "step", i+1, "error", err)
		}
		if rep != nil {
			rep.Step(StepResult{Index: i + 1, Input: s.Input, Screen: snapshot(target), Err: err})
		}
	}

	if rep != nil {
		rep.Finish(sum)
	}
	return sum, nil
}
