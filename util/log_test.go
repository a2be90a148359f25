// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestLoggerLevelNames(t *testing.T) {
	var buf bytes.Buffer
	defer func() {
		Logger.SetLevel(slog.LevelInfo)
		Logger.SetOutput(os.Stderr)
	}()

	Logger.SetLevel(LevelTrace)
	Logger.SetOutput(&buf)

	// log trace
	msg1 := "trace message"
	Logger.Trace(msg1) // level with name

	// level without name
	LevelDebug_2 := slog.Level(-6)
	msg2 := "no name debug message"
	Logger.Log(context.Background(), LevelDebug_2, msg2)

	expect := []string{"level=TRACE", "level=DEBUG-2", msg1, msg2, "pid="}
	result := buf.String()
	for i := range expect {
		if !strings.Contains(result, expect[i]) {
			t.Errorf("#test logger expect %q in %q\n", expect[i], result)
		}
	}
}

func TestLoggerFilter(t *testing.T) {
	var buf bytes.Buffer
	defer func() {
		Logger.SetLevel(slog.LevelInfo)
		Logger.SetOutput(os.Stderr)
	}()

	Logger.SetOutput(&buf)
	Logger.SetLevel(slog.LevelWarn)

	Logger.Info("hidden")
	Logger.Trace("hidden too")
	Logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("#test level filter got %q\n", buf.String())
	}
	if Logger.Level() != slog.LevelWarn {
		t.Errorf("#test Level() expect %s, got %s\n", slog.LevelWarn, Logger.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tc := []struct {
		label  string
		input  string
		expect slog.Level
		ok     bool
	}{
		{"trace", "trace", LevelTrace, true},
		{"debug upper", "DEBUG", slog.LevelDebug, true},
		{"empty is info", "", slog.LevelInfo, true},
		{"warning alias", "warning", slog.LevelWarn, true},
		{"error", " error ", slog.LevelError, true},
		{"fatal", "fatal", LevelFatal, true},
		{"unknown", "loud", slog.LevelInfo, false},
	}

	for _, v := range tc {
		got, err := ParseLevel(v.input)
		if got != v.expect || (err == nil) != v.ok {
			t.Errorf("#test %q expect (%s,%t), got (%s,%v)\n", v.label, v.expect, v.ok, got, err)
		}
	}
}
