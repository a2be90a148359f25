// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keys

const (
	LineBegin = "\x01"
	LineEnd   = "\x05"
	InputEnd  = "\x04"
	Tab       = "\t"
	Newline   = "\n"
	Esc       = "\x1b"
	Backspace = "\x7f"

	modIntro = "\x5b" // '['
	modEnd   = "\x7e" // '~'

	Home       = Esc + modIntro + "1" + modEnd
	Insert     = Esc + modIntro + "2" + modEnd
	Delete     = Esc + modIntro + "3" + modEnd
	End        = Esc + modIntro + "4" + modEnd
	PageUp     = Esc + modIntro + "5" + modEnd
	PageDown   = Esc + modIntro + "6" + modEnd
	ArrowUp    = Esc + modIntro + "A"
	ArrowDown  = Esc + modIntro + "B"
	ArrowRight = Esc + modIntro + "C"
	ArrowLeft  = Esc + modIntro + "D"
)

// Code identifies a key independent of its byte encoding.
type Code int

const (
	Undefined Code = iota
	Printable
	CodeLineBegin
	CodeLineEnd
	CodeInputEnd
	CodeTab
	CodeNewline
	CodeBackspace
	CodeHome
	CodeInsert
	CodeDelete
	CodeEnd
	CodePageUp
	CodePageDown
	CodeArrowUp
	CodeArrowDown
	CodeArrowRight
	CodeArrowLeft
)

type Key struct {
	Code  Code
	Name  string
	Seq   string
	Glyph string
}

// Table is the immutable key encoding table. Build it with NewTable and
// hand it to whoever needs it.
type Table struct {
	keys   []Key
	byName map[string]Key
	bySeq  map[string]Key
	byCode map[Code]Key
}

func NewTable() *Table {
	keys := []Key{
		{CodeLineBegin, "line-begin", LineBegin, "↖"},
		{CodeLineEnd, "line-end", LineEnd, "↘"},
		{CodeInputEnd, "input-end", InputEnd, "◼"},
		{CodeTab, "tab", Tab, "↹"},
		{CodeNewline, "newline", Newline, "↲"},
		{CodeBackspace, "backspace", Backspace, "⌫"},
		{CodeHome, "home", Home, "⇤"},
		{CodeEnd, "end", End, "⇥"},
		{CodeDelete, "delete", Delete, "⌦"},
		{CodeInsert, "insert", Insert, "⎀"},
		{CodePageUp, "page-up", PageUp, "⇞"},
		{CodePageDown, "page-down", PageDown, "⇟"},
		{CodeArrowUp, "arrow-up", ArrowUp, "↑"},
		{CodeArrowDown, "arrow-down", ArrowDown, "↓"},
		{CodeArrowRight, "arrow-right", ArrowRight, "→"},
		{CodeArrowLeft, "arrow-left", ArrowLeft, "←"},
	}

	t := &Table{
		keys:   keys,
		byName: make(map[string]Key, len(keys)),
		bySeq:  make(map[string]Key, len(keys)),
		byCode: make(map[Code]Key, len(keys)),
	}
	for _, k := range keys {
		t.byName[k.Name] = k
		t.bySeq[k.Seq] = k
		t.byCode[k.Code] = k
	}
	return t
}

func (t *Table) Lookup(name string) (Key, bool) {
	k, ok := t.byName[name]
	return k, ok
}

func (t *Table) BySeq(seq string) (Key, bool) {
	k, ok := t.bySeq[seq]
	return k, ok
}

func (t *Table) ByCode(c Code) (Key, bool) {
	k, ok := t.byCode[c]
	return k, ok
}

// Keys returns the keys in table order. The returned slice is a copy.
func (t *Table) Keys() []Key {
	ret := make([]Key, len(t.keys))
	copy(ret, t.keys)
	return ret
}

// Name returns the key name for c, "printable" or "undefined".
func (t *Table) Name(c Code) string {
	switch c {
	case Printable:
		return "printable"
	case Undefined:
		return "undefined"
	}
	if k, ok := t.byCode[c]; ok {
		return k.Name
	}
	return "undefined"
}
