// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keys

const (
	decodeGround = iota
	decodeEscape
	decodeCSI
	decodeCSIParam
)

// Event is one decoded key. Char is set for Printable keys.
type Event struct {
	Code Code
	Char byte
}

// Decoder turns the raw input byte stream back into key events. It is the
// input side counterpart of the encoding table, used by the reference
// editor.
type Decoder struct {
	table *Table
	state int
	param byte
}

func NewDecoder(t *Table) *Decoder {
	return &Decoder{table: t, state: decodeGround}
}

func (d *Decoder) setState(newState int) {
	if newState == decodeGround {
		d.param = 0
	}
	d.state = newState
}

// Decode consumes one byte. ok is false while an escape sequence is still
// incomplete.
func (d *Decoder) Decode(b byte) (ev Event, ok bool) {
	switch d.state {
	case decodeGround:
		if string(b) == Esc {
			d.setState(decodeEscape)
			return ev, false
		}
		if k, found := d.table.bySeq[string(b)]; found {
			return Event{Code: k.Code}, true
		}
		if b >= 0x20 && b != 0x7f {
			return Event{Code: Printable, Char: b}, true
		}
		return Event{Code: Undefined}, true

	case decodeEscape:
		if string(b) == modIntro {
			d.setState(decodeCSI)
			return ev, false
		}

	case decodeCSI:
		if 'A' <= b && b <= 'D' {
			d.setState(decodeGround)
			return d.lookup(Esc + modIntro + string(b)), true
		}
		if '1' <= b && b <= '6' {
			d.param = b
			d.setState(decodeCSIParam)
			return ev, false
		}

	case decodeCSIParam:
		if string(b) == modEnd {
			seq := Esc + modIntro + string(d.param) + modEnd
			d.setState(decodeGround)
			return d.lookup(seq), true
		}
	}

	// anything unexpected inside an escape sequence aborts it
	d.setState(decodeGround)
	return Event{Code: Undefined}, true
}

func (d *Decoder) lookup(seq string) Event {
	if k, found := d.table.bySeq[seq]; found {
		return Event{Code: k.Code}
	}
	return Event{Code: Undefined}
}

// Feed decodes p and returns the complete events.
func (d *Decoder) Feed(p []byte) []Event {
	var events []Event
	for _, b := range p {
		if ev, ok := d.Decode(b); ok {
			events = append(events, ev)
		}
	}
	return events
}
