// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// History keeps the completed lines in the order they were terminated.
type History struct {
	lines []string
}

func (h *History) Append(line string) {
	h.lines = append(h.lines, line)
}

func (h *History) Len() int { return len(h.lines) }

func (h *History) At(i int) string { return h.lines[i] }

// Lines returns a copy of all completed lines.
func (h *History) Lines() []string {
	ret := make([]string, len(h.lines))
	copy(ret, h.lines)
	return ret
}
