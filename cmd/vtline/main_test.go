// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/lineedit"
)

const childEnv = "VTLINE_TEST_CHILD"

func TestMain(m *testing.M) {
	switch os.Getenv(childEnv) {
	case "":
		os.Exit(m.Run())
	case "editor", "probe":
		var opts []lineedit.Option
		if os.Getenv(childEnv) == "probe" {
			opts = append(opts, lineedit.WithProbe())
		}
		if err := lineedit.New(keys.NewTable(), os.Stdout, opts...).Run(os.Stdin); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	case "sloppy":
		// echoes printable keys and ignores every editing key
		var buf [64]byte
		os.Stdout.WriteString("cmd> ")
		for {
			n, err := os.Stdin.Read(buf[:])
			for _, b := range buf[:n] {
				switch {
				case b == 0x04:
					os.Exit(0)
				case b >= 0x20 && b < 0x7f:
					os.Stdout.Write([]byte{b})
				}
			}
			if err != nil {
				os.Exit(0)
			}
		}
	}
	os.Exit(3)
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut strings.Builder
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestSuiteBuiltin(t *testing.T) {
	code, out, errOut := runCmd(t, "suite", "--builtin", "--no-color")
	if code != exitOK {
		t.Fatalf("#test builtin suite expect exit %d, got %d: %s\n", exitOK, code, errOut)
	}

	for _, want := range []string{
		"   1: SUCCESS - H e l l o ␣ W o r l d",
		"  85: SUCCESS",
		"*** All tests passed! *** Test finished with 85 success and 0 failure.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("#test builtin suite expect %q in output\n%s\n", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("#test --no-color output still has escape sequences\n")
	}
}

func TestSuiteProcess(t *testing.T) {
	t.Setenv(childEnv, "editor")

	code, out, errOut := runCmd(t, "suite", "--settle", "300ms", "--idle", "20ms",
		"-f", "../../scenario/testdata/basic.yaml", "--", os.Args[0])
	if code != exitOK {
		t.Fatalf("#test process suite expect exit %d, got %d: %s\n%s\n", exitOK, code, errOut, out)
	}
	if !strings.Contains(out, "Test finished with 6 success and 0 failure.") {
		t.Errorf("#test process suite output\n%s\n", out)
	}
}

func TestSuiteFailures(t *testing.T) {
	t.Setenv(childEnv, "sloppy")

	code, out, _ := runCmd(t, "suite", "--settle", "300ms", "--idle", "20ms",
		"-f", "../../scenario/testdata/basic.yaml", "--", os.Args[0])
	if code != exitFailed {
		t.Errorf("#test sloppy editor expect exit %d, got %d\n", exitFailed, code)
	}
	if !strings.Contains(out, "FAILURE") || !strings.Contains(out, "Some Tests failed.") {
		t.Errorf("#test sloppy editor output\n%s\n", out)
	}
}

func TestCrossBuiltin(t *testing.T) {
	code, out, errOut := runCmd(t, "cross", "--builtin", "--builtin-ref", "--no-color",
		"--simple", "50", "--steps", "100", "--seed", "9")
	if code != exitOK {
		t.Fatalf("#test builtin cross expect exit %d, got %d: %s\n", exitOK, code, errOut)
	}
	if !strings.Contains(out, "150 success and 0 failure") || !strings.Contains(out, "seed: 9") {
		t.Errorf("#test builtin cross output\n%s\n", out)
	}
}

func TestCrossAgainstProcess(t *testing.T) {
	t.Setenv(childEnv, "sloppy")

	code, out, _ := runCmd(t, "cross", "--builtin-ref", "--settle", "200ms", "--idle", "20ms",
		"--simple", "30", "--steps", "0", "--seed", "5", "--", os.Args[0])
	if code != exitFailed {
		t.Errorf("#test cross with sloppy editor expect exit %d, got %d\n%s\n", exitFailed, code, out)
	}
}

func TestKeys(t *testing.T) {
	code, out, errOut := runCmd(t, "keys", "--builtin")
	if code != exitOK {
		t.Fatalf("#test builtin keys expect exit %d, got %d: %s\n", exitOK, code, errOut)
	}
	if !strings.HasSuffix(out, "arrow-right\narrow-left\ninput-end\n") {
		t.Errorf("#test builtin keys output\n%s\n", out)
	}

	t.Setenv(childEnv, "probe")
	code, out, errOut = runCmd(t, "keys", "--settle", "300ms", "--", os.Args[0])
	if code != exitOK {
		t.Fatalf("#test process keys expect exit %d, got %d: %s\n", exitOK, code, errOut)
	}
	if !strings.Contains(out, "a\nA\n1\n~\n#\n$\nline-begin\n") || !strings.HasSuffix(out, "input-end\n") {
		t.Errorf("#test process keys output\n%s\n", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tc := []struct {
		label  string
		args   []string
		expect string
	}{
		{"missing command", []string{"suite"}, "a command to test is required"},
		{"builtin with command", []string{"suite", "--builtin", "--", "ls"}, "does not take a command"},
		{"cross without reference", []string{"cross", "--builtin"}, "a reference is required"},
		{"bad log level", []string{"suite", "--builtin", "--log-level", "loud"}, "unknown log level"},
		{"bad capacity", []string{"suite", "--builtin", "--capacity", "1"}, "capacity must be at least 2"},
		{"missing suite file", []string{"suite", "--builtin", "-f", "nowhere.yaml"}, "nowhere.yaml"},
	}

	for _, v := range tc {
		code, _, errOut := runCmd(t, v.args...)
		if code != exitAborted || !strings.Contains(errOut, v.expect) {
			t.Errorf("#test %q expect exit %d with %q, got %d %q\n", v.label, exitAborted, v.expect, code, errOut)
		}
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runCmd(t, "version")
	if code != exitOK || !strings.Contains(out, "git commit") {
		t.Errorf("#test version got %d\n%s\n", code, out)
	}
}
