// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func TestCheckIUTF8(t *testing.T) {
	// try pts master and slave first.
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("#test pty.Open %s\n", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if _, err := CheckIUTF8(int(tty.Fd())); err != nil {
		t.Errorf("#checkIUTF8 slave %s\n", err)
	}

	nullFD, err := os.OpenFile("/dev/null", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("#checkIUTF8 open %s failed, %s\n", "/dev/null", err)
	}
	defer nullFD.Close()

	// null fd should return error
	if _, err = CheckIUTF8(int(nullFD.Fd())); err == nil {
		t.Errorf("#checkIUTF8 null fd should return error, got nil\n")
	}
	if err = SetIUTF8(int(nullFD.Fd())); err == nil {
		t.Errorf("#setIUTF8 null fd should return error, got nil\n")
	}
}

func TestMakeRawTTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("#test pty.Open %s\n", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if _, err := MakeRawTTY(int(tty.Fd())); err != nil {
		t.Fatalf("#test MakeRawTTY got %s\n", err)
	}

	flag, err := CheckIUTF8(int(tty.Fd()))
	if err != nil || !flag {
		t.Errorf("#test MakeRawTTY expect IUTF8, got (%t,%v)\n", flag, err)
	}

	termios, err := unix.IoctlGetTermios(int(tty.Fd()), GetTermios)
	if err != nil {
		t.Fatalf("#test get termios %s\n", err)
	}
	if termios.Lflag&unix.ECHO != 0 || termios.Lflag&unix.ICANON != 0 || termios.Oflag&unix.OPOST != 0 {
		t.Errorf("#test MakeRawTTY still cooked: lflag=%x oflag=%x\n", termios.Lflag, termios.Oflag)
	}
}

func TestNonblockPipe(t *testing.T) {
	r, w, err := NonblockPipe()
	if err != nil {
		t.Fatalf("#test NonblockPipe %s\n", err)
	}
	defer r.Close()
	defer w.Close()

	// nothing written yet, the read must give up at the deadline
	r.SetReadDeadline(time.Now().Add(20 * time.Millisecond))
	var buf [8]byte
	_, err = r.Read(buf[:])
	if !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Errorf("#test empty pipe expect deadline exceeded, got %v\n", err)
	}

	w.Write([]byte("ok"))
	r.SetReadDeadline(time.Now().Add(time.Second))
	n, err := r.Read(buf[:])
	if err != nil || string(buf[:n]) != "ok" {
		t.Errorf("#test pipe read expect %q, got (%q,%v)\n", "ok", buf[:n], err)
	}
}

func TestPollable(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("#test pty.Open %s\n", err)
	}
	defer tty.Close()

	// Fd() leaves ptmx in blocking mode
	if _, err := MakeRawTTY(int(tty.Fd())); err != nil {
		t.Fatalf("#test MakeRawTTY got %s\n", err)
	}
	_ = ptmx.Fd()

	master, err := Pollable(ptmx)
	if err != nil {
		t.Fatalf("#test Pollable got %s\n", err)
	}
	defer master.Close()

	master.SetReadDeadline(time.Now().Add(20 * time.Millisecond))
	var buf [8]byte
	if _, err = master.Read(buf[:]); !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Errorf("#test idle master expect deadline exceeded, got %v\n", err)
	}

	tty.Write([]byte("pong"))
	master.SetReadDeadline(time.Now().Add(time.Second))
	n, err := master.Read(buf[:])
	if err != nil || string(buf[:n]) != "pong" {
		t.Errorf("#test master read expect %q, got (%q,%v)\n", "pong", buf[:n], err)
	}
}
