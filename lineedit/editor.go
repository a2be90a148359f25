// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lineedit

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/ericwq/vtline/keys"
)

const (
	DefaultPrompt = "cmd> "
	PageOffset    = 10
	TabPosition   = 8
	ReadBufSize   = 65536
)

// Editor is a small line editor with history. It answers every key with
// BEL, BS, LF and printable bytes only, which is exactly the output
// vocabulary the terminal interpreter understands.
type Editor struct {
	table   *keys.Table
	decoder *keys.Decoder
	out     *bufio.Writer
	prompt  string
	probe   bool

	buf []byte
	ptr int // cursor inside buf
	end int // logical end of buf

	history    []string
	historyIdx int
	tempStored bool // history tail holds the line being edited
}

type Option func(*Editor)

func WithPrompt(prompt string) Option { return func(e *Editor) { e.prompt = prompt } }

// WithProbe makes the editor print one key name per line instead of
// editing, which is used to verify the key mapping.
func WithProbe() Option { return func(e *Editor) { e.probe = true } }

func WithBufferSize(n int) Option {
	return func(e *Editor) {
		if n > 1 {
			e.buf = make([]byte, n)
		}
	}
}

func New(table *keys.Table, w io.Writer, opts ...Option) *Editor {
	e := &Editor{
		table:   table,
		decoder: keys.NewDecoder(table),
		out:     bufio.NewWriter(w),
		prompt:  DefaultPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.buf == nil {
		e.buf = make([]byte, ReadBufSize)
	}
	return e
}

// Start prints the first prompt.
func (e *Editor) Start() error {
	if !e.probe {
		e.resetBufAndPrintPrompt()
	}
	return e.out.Flush()
}

// Feed handles the raw input bytes in p. ended reports that the input-end
// key was seen, bytes after it are ignored.
func (e *Editor) Feed(p []byte) (ended bool, err error) {
	for _, b := range p {
		ev, ok := e.decoder.Decode(b)
		if !ok {
			continue
		}
		if e.probe {
			e.printKey(ev)
		}
		if ev.Code == keys.CodeInputEnd {
			ended = true
			break
		}
		if !e.probe {
			e.handle(ev)
		}
	}
	return ended, e.out.Flush()
}

// Run reads keys from r until input-end or EOF.
func (e *Editor) Run(r io.Reader) error {
	if err := e.Start(); err != nil {
		return err
	}

	var chunk [4096]byte
	for {
		n, err := r.Read(chunk[:])
		if n > 0 {
			ended, ferr := e.Feed(chunk[:n])
			if ferr != nil {
				return ferr
			}
			if ended {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// History returns a copy of the committed history entries.
func (e *Editor) History() []string {
	ret := make([]string, len(e.history))
	copy(ret, e.history)
	return ret
}

// Line returns the line being edited and the cursor inside it.
func (e *Editor) Line() (string, int) {
	return string(e.buf[:e.end]), e.ptr
}

func (e *Editor) handle(ev keys.Event) {
	switch ev.Code {
	case keys.CodeLineBegin, keys.CodeHome:
		e.moveBufPtr(0)
	case keys.CodeLineEnd, keys.CodeEnd:
		e.moveBufPtr(e.end)
	case keys.CodeBackspace:
		if e.moveBufPtr(e.ptr - 1) {
			e.deleteChar()
		}
	case keys.CodeDelete:
		e.deleteChar()
	case keys.CodeNewline:
		e.addHistory()
		e.out.WriteByte('\n')
		e.resetBufAndPrintPrompt()
	case keys.CodeArrowUp:
		e.moveToHistory(e.historyIdx - 1)
	case keys.CodeArrowDown:
		e.moveToHistory(e.historyIdx + 1)
	case keys.CodeArrowRight:
		e.moveBufPtr(e.ptr + 1)
	case keys.CodeArrowLeft:
		e.moveBufPtr(e.ptr - 1)
	case keys.CodePageUp:
		e.moveToHistory(e.historyIdx - PageOffset)
	case keys.CodePageDown:
		e.moveToHistory(e.historyIdx + PageOffset)
	case keys.CodeTab:
		e.insertChar(' ', TabPosition-e.ptr%TabPosition)
	case keys.Printable:
		e.insertChar(ev.Char, 1)
	default: // insert is not supported either
		e.beep()
	}
}

func (e *Editor) printKey(ev keys.Event) {
	if ev.Code == keys.Printable {
		e.out.WriteByte(ev.Char)
	} else {
		e.out.WriteString(e.table.Name(ev.Code))
	}
	e.out.WriteByte('\n')
}

func (e *Editor) beep() { e.out.WriteByte('\a') }

func (e *Editor) resetBufAndPrintPrompt() {
	e.ptr = 0
	e.end = 0
	e.out.WriteString(e.prompt)
}

// moveBufPtr moves the cursor to ptr by printing BS or re-printing the
// characters it passes. Out of range positions beep and leave the cursor.
func (e *Editor) moveBufPtr(ptr int) bool {
	if ptr < 0 || ptr > e.end {
		e.beep()
		return false
	}
	for ptr < e.ptr {
		e.out.WriteByte('\b')
		e.ptr--
	}
	for ptr > e.ptr {
		e.out.WriteByte(e.buf[e.ptr])
		e.ptr++
	}
	return true
}

// deleteChar removes the character under the cursor, the cursor stays.
func (e *Editor) deleteChar() bool {
	if e.ptr == e.end {
		e.beep()
		return false
	}

	origin := e.ptr
	for c := e.ptr; c < e.end; c++ {
		e.buf[c] = e.buf[c+1]
		if c != e.end-1 {
			e.out.WriteByte(e.buf[c])
			e.ptr++
		} else {
			// erase the last cell, position intact
			e.out.WriteByte(' ')
			e.out.WriteByte('\b')
		}
	}
	e.end--
	e.moveBufPtr(origin)
	return true
}

// insertChar inserts ch repeat times at the cursor and leaves the cursor
// right after the inserted characters.
func (e *Editor) insertChar(ch byte, repeat int) {
	if e.end+repeat >= len(e.buf) {
		e.beep()
		return
	}

	for c := e.end - 1; c >= e.ptr; c-- {
		e.buf[c+repeat] = e.buf[c]
	}
	for i := 0; i < repeat; i++ {
		e.buf[e.ptr] = ch
		e.out.WriteByte(ch)
		e.ptr++
	}
	e.end += repeat

	origin := e.ptr
	for c := e.ptr; c < e.end; c++ {
		e.out.WriteByte(e.buf[c])
		e.ptr++
	}
	e.moveBufPtr(origin)
}

// deleteLine blanks the displayed line and empties the buffer.
func (e *Editor) deleteLine() {
	e.moveBufPtr(0)
	for c := 0; c < e.end; c++ {
		e.out.WriteByte(' ')
		e.ptr++
	}
	e.moveBufPtr(0)
	e.end = 0
}

// moveToHistory shows history[index]. Leaving the bottom saves the edited
// line as a temporary entry, coming back to it drops that entry again.
func (e *Editor) moveToHistory(index int) {
	size := len(e.history)

	if index < e.historyIdx {
		if e.historyIdx == 0 {
			e.beep()
			return
		}
		if index < 0 {
			index = 0
		}
		if e.historyIdx == size {
			e.history = append(e.history, string(e.buf[:e.end]))
			e.tempStored = true
		}
		e.historyIdx = index
		e.retrieveHistory()
		return
	}

	if e.historyIdx >= size {
		e.beep()
		return
	}
	if index >= size {
		index = size - 1
	}
	e.historyIdx = index
	e.retrieveHistory()
	if e.tempStored && index == size-1 {
		e.history = e.history[:size-1]
		e.tempStored = false
	}
}

// addHistory commits the current line without its surrounding spaces. Empty
// lines are not recorded.
func (e *Editor) addHistory() {
	line := strings.Trim(string(e.buf[:e.end]), " ")

	if e.tempStored {
		e.history = e.history[:len(e.history)-1]
		e.tempStored = false
	}
	if line != "" {
		e.history = append(e.history, line)
	}
	e.historyIdx = len(e.history)
}

func (e *Editor) retrieveHistory() {
	e.deleteLine()
	line := e.history[e.historyIdx]
	copy(e.buf, line)
	e.out.WriteString(line)
	e.ptr = len(line)
	e.end = len(line)
}
