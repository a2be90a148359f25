// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"strings"

	"github.com/ericwq/vtline/keys"
)

const DefaultPrompt = "cmd> "

// Step is one input with the line expected afterwards. Buffer and Cursor
// are relative to the prompt.
type Step struct {
	Input  string
	Buffer string
	Cursor int
	Bells  int
}

type Suite struct {
	Name   string
	Prompt string
	Strict bool // compare buffers exactly instead of ignoring trailing blanks
	Steps  []Step
}

// thirteen short history entries, enough to page over
var longHistory = func() string {
	var sb strings.Builder
	for _, n := range []int{2, 3, 4, 5, 6, 7, 8, 9, 0, 11, 12, 13, 14} {
		fmt.Fprintf(&sb, "%d%s", n, keys.Newline)
	}
	return sb.String()
}()

// Official returns the built-in editing suite. It covers inserting in the
// middle of a line, deleting, tab stops, history browsing and paging.
func Official() *Suite {
	steps := []Step{
		{"Hello World", "Hello World", 11, 0},
		{"  ", "Hello World  ", 13, 0},
		{keys.LineBegin, "Hello World  ", 0, 0},
		{" ", " Hello World  ", 1, 0},
		{"YaYa", " YaYaHello World  ", 5, 0},
		{" ", " YaYa Hello World  ", 6, 0},
		{strings.Repeat(keys.Delete, 2), " YaYa llo World  ", 6, 0},
		{strings.Repeat(keys.Backspace, 3), " Yallo World  ", 3, 0},
		{strings.Repeat(keys.Newline, 2), "", 0, 0},
		{keys.ArrowUp, "Yallo World", 11, 0},
		{strings.Repeat(keys.ArrowLeft, 6), "Yallo World", 5, 0},
		{"w", "Yallow World", 6, 0},
		{keys.Newline, "", 0, 0},
		{strings.Repeat(keys.ArrowUp, 3), "Yallo World", 11, 1},
		{"!!", "Yallo World!!", 13, 0},
		{strings.Repeat(keys.ArrowDown, 4), "", 0, 2},
		{"You may say", "You may say", 11, 0},
		{keys.Home, "You may say", 0, 0},
		{"  ", "  You may say", 2, 0},
		{strings.Repeat(keys.ArrowUp, 2), "Yallo World", 11, 0},
		{strings.Repeat(keys.Backspace, 9), "Ya", 2, 0},
		{keys.Newline, "", 0, 0},
		{"I am a dreamer", "I am a dreamer", 14, 0},
		{"  ", "I am a dreamer  ", 16, 0},
		{keys.ArrowUp, "Ya", 2, 0},
		{"Da", "YaDa", 4, 0},
		{keys.ArrowDown, "I am a dreamer  ", 16, 0},
		{keys.ArrowUp, "Ya", 2, 0},
		{strings.Repeat(keys.Backspace, 3), "", 0, 1},
		{keys.Delete, "", 0, 1},
		{"   ", "   ", 3, 0},
		{keys.Newline, "", 0, 0},
		{keys.ArrowUp, "Ya", 2, 0},
		{keys.ArrowUp, "Yallow World", 12, 0},
		{strings.Repeat(keys.ArrowDown, 3), "", 0, 1},
		{keys.Newline, "", 0, 0},
		{"But not", "But not", 7, 0},
		{"  ", "But not  ", 9, 0},
		{keys.Home, "But not  ", 0, 0},
		{keys.End, "But not  ", 9, 0},
		{strings.Repeat(keys.ArrowLeft, 5), "But not  ", 4, 0},
		{"I'm", "But I'mnot  ", 7, 0},
		{" ", "But I'm not  ", 8, 0},
		{keys.Newline, "", 0, 0},
		{keys.ArrowUp, "But I'm not", 11, 0},
		{" ", "But I'm not ", 12, 0},
		{"the only one.", "But I'm not the only one.", 25, 0},
		{strings.Repeat(keys.ArrowUp, 2), "Yallow World", 12, 0},
		{strings.Repeat(keys.Delete, 2), "Yallow World", 12, 2},
		{keys.Newline, "", 0, 0},
		{keys.ArrowUp, "Yallow World", 12, 0},
		{keys.ArrowUp, "But I'm not", 11, 0},
		{keys.ArrowUp, "Ya", 2, 0},
		{"...", "Ya...", 5, 0},
		{keys.Newline, "", 0, 0},
		{"I hope someday", "I hope someday", 14, 0},
		{strings.Repeat(keys.ArrowLeft, 8), "I hope someday", 6, 0},
		{keys.Tab, "I hope   someday", 8, 0},
		{keys.Newline, "", 0, 0},
		{keys.Tab, "        ", 8, 0},
		{"you'll join us.", "        you'll join us.", 23, 0},
		{keys.Home, "        you'll join us.", 0, 0},
		{"1", "1        you'll join us.", 1, 0},
		{keys.LineEnd, "1        you'll join us.", 24, 0},
		{keys.Tab, "1        you'll join us.       ", 32, 0},
		{keys.Newline, "", 0, 0},
		{longHistory, "", 0, 0},
		{"And the world", "And the world", 13, 0},
		{keys.PageUp, "5", 1, 0},
		{keys.PageUp, "Yallow World", 12, 0},
		{keys.PageUp, "Yallo World", 11, 0},
		{keys.PageUp, "Yallo World", 11, 1},
		{keys.PageDown, "4", 1, 0},
		{keys.PageDown, "14", 2, 0},
		{keys.PageDown, "And the world", 13, 0},
		{keys.PageDown, "And the world", 13, 1},
		{keys.Newline, "", 0, 0},
		{"will live as one!", "will live as one!", 17, 0},
		{keys.PageUp, "6", 1, 0},
		{" ", "6 ", 2, 0},
		{"imagine", "6 imagine", 9, 0},
		{keys.Newline, "", 0, 0},
		{keys.PageDown, "", 0, 1},
		{strings.Repeat(keys.ArrowUp, 12), "5", 1, 0},
		{strings.Repeat(keys.PageDown, 2), "", 0, 0},
	}
	return &Suite{Name: "official", Prompt: DefaultPrompt, Steps: steps}
}
