// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frontend

import (
	"errors"
	"io"
	"os"
	"time"
)

// hard cap of a single drain, counted in idle periods after settle
const maxIdleRounds = 50

type DeadlineReader interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

// Drain collects the output that is currently available from r. It waits
// up to settle for the first byte, then keeps reading until r stays quiet
// for idle. The whole call never takes longer than settle+50*idle, so a
// program that answers less than expected cannot block the driver.
//
// A read timeout is the normal way to finish and is not reported. Other
// errors, including io.EOF, are returned together with the bytes read so
// far.
func Drain(r DeadlineReader, settle, idle time.Duration) ([]byte, error) {
	var buf [16384]byte
	var out []byte

	hardStop := time.Now().Add(settle + maxIdleRounds*idle)
	wait := settle
	for {
		deadline := time.Now().Add(wait)
		if deadline.After(hardStop) {
			deadline = hardStop
		}
		r.SetReadDeadline(deadline)

		n, err := r.Read(buf[:])
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return out, nil
			}
			return out, err
		}
		if n > 0 {
			wait = idle
		}
		if !time.Now().Before(hardStop) {
			return out, nil
		}
	}
}
