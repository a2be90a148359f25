// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenario

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ericwq/vtline/check"
	"github.com/ericwq/vtline/frontend"
	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/util"
	"golang.org/x/sync/errgroup"
)

// SimpleAlphabet keeps the line short and the history busy, it is used to
// warm up both editors.
var SimpleAlphabet = []string{
	"O", "Q", "A", "O", "Q", "A", "O", "Q", "A",
	keys.Newline, keys.Tab,
	keys.Backspace, keys.Home,
	strings.Repeat(keys.ArrowRight, 3), strings.Repeat(keys.ArrowLeft, 3),
	keys.End,
}

var CompleteAlphabet = []string{
	"A", "@", "*", "W", "u", "Q", " ",
	keys.LineBegin, keys.LineEnd,
	keys.Tab, keys.Newline,
	keys.Backspace, keys.Home,
	keys.End, keys.Delete,
	keys.PageUp, keys.PageDown,
	keys.ArrowUp, keys.ArrowDown,
	keys.ArrowRight, keys.ArrowLeft,
}

const DefaultSimpleSteps = 200

type CrossOptions struct {
	SimpleSteps int    // keys drawn from SimpleAlphabet
	Steps       int    // keys drawn from CompleteAlphabet afterwards
	Seed        uint64 // zero picks a random seed
}

// Cross feeds the same random keys to ref and test and requires test to
// show exactly what ref shows after every key. It stops at the first
// difference. The seed used is part of the summary so a failing run can be
// repeated.
func Cross(ctx context.Context, ref, test frontend.Target, opt CrossOptions, rep Reporter) (Summary, error) {
	seed := opt.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	sum := Summary{Name: "cross", Seed: seed}
	util.Logger.Info("cross testing", "seed", seed, "simple", opt.SimpleSteps, "complete", opt.Steps)

	phases := []struct {
		alphabet []string
		count    int
	}{
		{SimpleAlphabet, opt.SimpleSteps},
		{CompleteAlphabet, opt.Steps},
	}

	for _, ph := range phases {
		for i := 0; i < ph.count; i++ {
			if err := ctx.Err(); err != nil {
				return sum, err
			}

			seq := ph.alphabet[rng.IntN(len(ph.alphabet))]
			if err := feedBoth(ref, test, []byte(seq)); err != nil {
				return sum, fmt.Errorf("step %d: %w", i+1, err)
			}

			err := check.Check(test,
				check.Buffer(ref.Buffer(true)),
				check.Cursor(ref.Cursor()),
				check.Bells(ref.BellCount()))
			ref.ResetBells()

			sum.Total++
			if err == nil {
				sum.Succeeded++
			} else {
				sum.Failed++
			}
			if rep != nil {
				rep.CrossStep(CrossResult{Index: i + 1, Input: seq, Ref: snapshot(ref), Test: snapshot(test), Err: err})
			}
			if err != nil {
				if rep != nil {
					rep.Finish(sum)
				}
				return sum, nil
			}
		}
	}

	if rep != nil {
		rep.Finish(sum)
	}
	return sum, nil
}

// both targets are independent, feed them at the same time
func feedBoth(ref, test frontend.Target, seq []byte) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := ref.Input(seq); err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := test.Input(seq); err != nil {
			return fmt.Errorf("test: %w", err)
		}
		return nil
	})
	return g.Wait()
}
