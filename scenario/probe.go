// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenario

import (
	"context"
	"strings"

	"github.com/ericwq/vtline/frontend"
	"github.com/ericwq/vtline/keys"
)

// ProbeLiteral is typed before the special keys, it checks that plain
// characters pass through untouched.
const ProbeLiteral = "aA1~#$"

var probeKeys = []string{
	keys.LineBegin, keys.LineEnd,
	keys.Tab, keys.Newline,
	keys.Backspace, keys.Home,
	keys.End, keys.Delete,
	keys.PageUp, keys.PageDown,
	keys.ArrowUp, keys.ArrowDown,
	keys.ArrowRight, keys.ArrowLeft,
	keys.InputEnd,
}

// ProbeSequence is the whole input of a key mapping probe.
func ProbeSequence() string {
	return ProbeLiteral + strings.Join(probeKeys, "")
}

// Probe sends ProbeSequence to a target running in key-naming mode and
// returns the lines it printed, one per key. Reading them is left to a
// human.
func Probe(ctx context.Context, target frontend.Target) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := target.Input([]byte(ProbeSequence())); err != nil {
		return target.History(), err
	}
	return target.History(), nil
}
