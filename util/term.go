// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func CheckIUTF8(fd int) (bool, error) {
	termios, err := unix.IoctlGetTermios(fd, GetTermios)
	if err != nil {
		return false, err
	}

	// Input is UTF-8 (since Linux 2.6.4)
	return (termios.Iflag & unix.IUTF8) != 0, nil
}

func SetIUTF8(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, GetTermios)
	if err != nil {
		return err
	}

	// when the bit is set to 1, enable IUTF8
	termios.Iflag |= unix.IUTF8
	return unix.IoctlSetTermios(fd, SetTermios, termios)
}

// MakeRawTTY prepares a pts for byte exact I/O: no echo, no line
// discipline and no output post processing, so '\n' is not turned into
// "\r\n".
func MakeRawTTY(fd int) (*term.State, error) {
	if err := SetIUTF8(fd); err != nil {
		return nil, err
	}
	return term.MakeRaw(fd)
}

// NonblockPipe returns a pipe whose read end is in O_NONBLOCK mode. The
// runtime poller picks such a file up, so reads honor SetReadDeadline. The
// write end stays blocking for the child process.
func NonblockPipe() (r *os.File, w *os.File, err error) {
	var fds [2]int
	if err = unix.Pipe(fds[:]); err != nil {
		return nil, nil, err
	}
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])

	if err = unix.SetNonblock(fds[0], true); err != nil {
		unix.Close(fds[0])
		unix.Close(fds[1])
		return nil, nil, err
	}

	r = os.NewFile(uintptr(fds[0]), "|0")
	w = os.NewFile(uintptr(fds[1]), "|1")
	return r, w, nil
}

// Pollable replaces f by a non-blocking duplicate that honors read and
// write deadlines. Calling Fd on an *os.File switches it to blocking mode
// for good, the duplicate starts fresh. f is closed.
func Pollable(f *os.File) (*os.File, error) {
	fd, err := unix.Dup(int(f.Fd()))
	name := f.Name()
	f.Close()
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(fd)

	if err = unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return os.NewFile(uintptr(fd), name), nil
}
