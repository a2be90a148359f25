// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"
	"testing"

	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/lineedit"
	flag "github.com/spf13/pflag"
)

func TestParseFlags(t *testing.T) {
	tc := []struct {
		label  string
		args   []string
		expect Config
	}{
		{"defaults", []string{}, Config{prompt: lineedit.DefaultPrompt, size: lineedit.ReadBufSize}},
		{"probe short", []string{"-p"}, Config{probe: true, prompt: lineedit.DefaultPrompt, size: lineedit.ReadBufSize}},
		{"prompt and size", []string{"--prompt", "> ", "--size", "80"}, Config{prompt: "> ", size: 80}},
		{"version", []string{"--version"}, Config{version: true, prompt: lineedit.DefaultPrompt, size: lineedit.ReadBufSize}},
	}

	for _, v := range tc {
		conf, output, err := parseFlags("prog", v.args)
		if err != nil {
			t.Errorf("#test %q got error %s, output %q\n", v.label, err, output)
			continue
		}
		if *conf != v.expect {
			t.Errorf("#test %q expect %+v, got %+v\n", v.label, v.expect, *conf)
		}
	}
}

func TestParseFlagsError(t *testing.T) {
	tc := []struct {
		label string
		args  []string
	}{
		{"unknown flag", []string{"--colour"}},
		{"bad size", []string{"--size", "many"}},
		{"tiny size", []string{"--size", "1"}},
		{"positional", []string{"extra"}},
	}

	for _, v := range tc {
		if _, _, err := parseFlags("prog", v.args); err == nil {
			t.Errorf("#test %q expect error, got nil\n", v.label)
		}
	}

	if _, _, err := parseFlags("prog", []string{"--help"}); err != flag.ErrHelp {
		t.Errorf("#test --help expect %s, got %v\n", flag.ErrHelp, err)
	}
}

// feed writes input to a pipe that serves as stdin of run.
func feed(t *testing.T, input string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("#test pipe %s\n", err)
	}
	go func() {
		w.WriteString(input)
		w.Close()
	}()
	return r
}

func TestRun(t *testing.T) {
	tc := []struct {
		label  string
		args   []string
		input  string
		expect string
	}{
		{"edit", nil, "abc" + keys.Backspace + keys.InputEnd, "cmd> abc\b \b"},
		{"prompt", []string{"--prompt", "$ "}, "x" + keys.Newline + keys.InputEnd, "$ x\n$ "},
		{"probe", []string{"--probe"}, "q" + keys.Delete + keys.InputEnd, "q\ndelete\ninput-end\n"},
		{"eof ends", nil, "ok", "cmd> ok"},
		{"full buffer beeps", []string{"--size", "3"}, "abc" + keys.InputEnd, "cmd> ab\a"},
	}

	for _, v := range tc {
		in := feed(t, v.input)
		var out, errOut strings.Builder
		code := run("prog", v.args, in, &out, &errOut)
		in.Close()

		if code != 0 {
			t.Errorf("#test %q expect exit 0, got %d: %s\n", v.label, code, errOut.String())
		}
		if out.String() != v.expect {
			t.Errorf("#test %q expect %q, got %q\n", v.label, v.expect, out.String())
		}
	}
}

func TestRunUsage(t *testing.T) {
	var out, errOut strings.Builder
	if code := run("prog", []string{"--nope"}, os.Stdin, &out, &errOut); code != 2 {
		t.Errorf("#test bad flag expect exit 2, got %d\n", code)
	}
	if !strings.Contains(errOut.String(), "Hints: ") || !strings.Contains(errOut.String(), "Usage:") {
		t.Errorf("#test bad flag output %q\n", errOut.String())
	}

	out.Reset()
	if code := run("prog", []string{"-h"}, os.Stdin, &out, &errOut); code != 0 || !strings.Contains(out.String(), "--probe") {
		t.Errorf("#test help got %d %q\n", code, out.String())
	}

	out.Reset()
	if code := run("prog", []string{"-v"}, os.Stdin, &out, &errOut); code != 0 || !strings.Contains(out.String(), "reference editor") {
		t.Errorf("#test version got %d %q\n", code, out.String())
	}
}
