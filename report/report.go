// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/scenario"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-colorable"
	"github.com/rivo/uniseg"
)

const (
	stepKeyWidth  = 32
	crossKeyWidth = 12
	crossIndent   = 30

	cursorAtEnd = "%"
)

// Printer writes the step lines and summaries of suite and cross runs.
type Printer struct {
	out     io.Writer
	keys    *keys.Table
	success *color.Color
	failure *color.Color
	pass    *color.Color
	fail    *color.Color
	cursor  *color.Color
	totals  []scenario.Summary
}

// New returns a Printer writing to w. Escape sequences are translated on
// consoles that need it. With noColor set no escape sequence is written
// at all.
func New(w io.Writer, table *keys.Table, noColor bool) *Printer {
	p := &Printer{
		keys:    table,
		success: color.New(color.FgHiGreen),
		failure: color.New(color.FgHiRed),
		pass:    color.New(color.FgHiGreen, color.Bold),
		fail:    color.New(color.FgHiRed, color.Bold),
		cursor:  color.New(color.ReverseVideo),
	}

	if noColor {
		p.out = colorable.NewNonColorable(w)
	} else if f, ok := w.(*os.File); ok {
		p.out = colorable.NewColorable(f)
	} else {
		p.out = w
	}

	for _, c := range []*color.Color{p.success, p.failure, p.pass, p.fail, p.cursor} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

func (p *Printer) Step(r scenario.StepResult) {
	fmt.Fprintf(p.out, "%4d: %s - %s - [%s]\n", r.Index, p.status(r.Err),
		pad(p.display(r.Input), stepKeyWidth), p.highlight(r.Screen))
	if r.Err != nil {
		fmt.Fprintln(p.out, r.Err)
	}
}

func (p *Printer) CrossStep(r scenario.CrossResult) {
	fmt.Fprintf(p.out, "%4d: %s - %s  p1: [%s]\n%sp2: [%s]\n", r.Index, p.status(r.Err),
		pad(p.display(r.Input), crossKeyWidth), p.highlight(r.Ref),
		strings.Repeat(" ", crossIndent), p.highlight(r.Test))
	if r.Err != nil {
		fmt.Fprintln(p.out, r.Err)
	}
}

// Finish prints the verdict line and remembers s for Totals.
func (p *Printer) Finish(s scenario.Summary) {
	judge := p.pass.Sprint("All tests passed!")
	if !s.Passed() {
		judge = p.fail.Sprint("Some Tests failed.")
	}
	fmt.Fprintf(p.out, "*** %s *** Test finished with %d success and %d failure.\n", judge, s.Succeeded, s.Failed)
	if s.Seed != 0 {
		fmt.Fprintf(p.out, "seed: %d\n", s.Seed)
	}
	p.totals = append(p.totals, s)
}

// Totals renders one row per finished run.
func (p *Printer) Totals() {
	if len(p.totals) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.Style{
		Box: table.BoxStyle{PaddingLeft: " ", PaddingRight: " "},
		Format: table.FormatOptions{
			Footer: text.FormatUpper,
			Header: text.FormatUpper,
			Row:    text.FormatDefault,
		},
		Options: table.Options{DrawBorder: false, SeparateColumns: false},
	})
	t.AppendHeader(table.Row{"run", "steps", "success", "failure", "seed"})

	var steps, ok, bad int
	for _, s := range p.totals {
		seed := ""
		if s.Seed != 0 {
			seed = strconv.FormatUint(s.Seed, 10)
		}
		t.AppendRow(table.Row{s.Name, s.Total, s.Succeeded, s.Failed, seed})
		steps += s.Total
		ok += s.Succeeded
		bad += s.Failed
	}
	t.AppendFooter(table.Row{"total", steps, ok, bad, ""})
	t.Render()
}

// PrintHistory writes the probe output, one key per line.
func (p *Printer) PrintHistory(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(p.out, l)
	}
}

func (p *Printer) status(err error) string {
	if err != nil {
		return p.failure.Sprint("FAILURE")
	}
	return p.success.Sprint("SUCCESS")
}

func (p *Printer) display(seq string) string {
	s, err := p.keys.Display(seq)
	if err != nil {
		return s + "?"
	}
	return s
}

// highlight shows the cell under the cursor in reverse video, a cursor
// past the last cell is drawn as a reversed '%'.
func (p *Printer) highlight(s scenario.Screen) string {
	buf, n := s.Buffer, s.Cursor
	switch {
	case n < 0 || n > len(buf):
		return buf
	case n == len(buf):
		return buf + p.cursor.Sprint(cursorAtEnd)
	}
	return buf[:n] + p.cursor.Sprint(buf[n:n+1]) + buf[n+1:]
}

// pad fills s with spaces up to width terminal columns.
func pad(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
