// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/ericwq/vtline/util"
	"golang.org/x/sys/unix"
)

var (
	ErrNotExited = errors.New("program did not exit after end of input")
	ErrNoCommand = errors.New("empty command line")
)

type SpawnOptions struct {
	PTY  bool     // attach the program to a raw pseudo terminal instead of pipes
	Dir  string   // working directory, empty means current
	Env  []string // extra environment entries
	Rows uint16
	Cols uint16
}

// Process is a program under test. Its standard input receives the key
// sequences and its standard output is drained without blocking.
type Process struct {
	cmd  *exec.Cmd
	in   io.WriteCloser
	out  *os.File
	pty  bool
	done chan struct{}
	err  error // exit status, valid after done is closed
}

func Spawn(ctx context.Context, argv []string, opt SpawnOptions) (*Process, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opt.Dir
	cmd.Env = append(os.Environ(), opt.Env...)
	cmd.Stderr = os.Stderr

	p := &Process{cmd: cmd, pty: opt.PTY, done: make(chan struct{})}
	var childSide []*os.File // closed in parent once the child holds them

	if opt.PTY {
		ptmx, tty, err := pty.Open()
		if err != nil {
			return nil, fmt.Errorf("open pty: %w", err)
		}
		if _, err := util.MakeRawTTY(int(tty.Fd())); err != nil {
			ptmx.Close()
			tty.Close()
			return nil, fmt.Errorf("raw pty: %w", err)
		}
		if opt.Rows > 0 && opt.Cols > 0 {
			pty.Setsize(ptmx, &pty.Winsize{Rows: opt.Rows, Cols: opt.Cols})
		}
		master, err := util.Pollable(ptmx)
		if err != nil {
			tty.Close()
			return nil, fmt.Errorf("pty master: %w", err)
		}

		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 0}
		p.in, p.out = master, master
		childSide = append(childSide, tty)
	} else {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe: %w", err)
		}
		r, w, err := util.NonblockPipe()
		if err != nil {
			return nil, fmt.Errorf("stdout pipe: %w", err)
		}
		cmd.Stdout = w
		p.in, p.out = stdin, r
		childSide = append(childSide, w)
	}

	if err := cmd.Start(); err != nil {
		for _, f := range childSide {
			f.Close()
		}
		p.out.Close()
		p.in.Close()
		return nil, fmt.Errorf("start %q: %w", argv[0], err)
	}
	for _, f := range childSide {
		f.Close()
	}

	util.Logger.Debug("spawn", "argv", argv, "pid", cmd.Process.Pid, "pty", opt.PTY)

	go func() {
		p.err = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *Process) Write(b []byte) (int, error) {
	return p.in.Write(b)
}

// Drain reads the output produced so far, see [Drain]. The end of output
// is reported as io.EOF for both pipes and pseudo terminals.
func (p *Process) Drain(settle, idle time.Duration) ([]byte, error) {
	out, err := Drain(p.out, settle, idle)
	if p.pty && errors.Is(err, syscall.EIO) {
		// the slave side is gone
		err = io.EOF
	}
	return out, err
}

func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait waits up to timeout for the program to exit and returns its exit
// status. ErrNotExited is returned if it is still running.
func (p *Process) Wait(timeout time.Duration) error {
	select {
	case <-p.done:
		return p.err
	case <-time.After(timeout):
		return ErrNotExited
	}
}

func (p *Process) Terminate() error {
	if p.Exited() {
		return nil
	}
	return p.cmd.Process.Signal(unix.SIGTERM)
}

// Close stops the program if it is still running and releases its
// descriptors.
func (p *Process) Close() error {
	if !p.Exited() {
		p.Terminate()
		if p.Wait(100*time.Millisecond) == ErrNotExited {
			p.cmd.Process.Kill()
			<-p.done
		}
	}

	var errs []error
	if !p.pty {
		errs = append(errs, ignoreClosed(p.in.Close()))
	}
	errs = append(errs, ignoreClosed(p.out.Close()))
	return errors.Join(errs...)
}

func ignoreClosed(err error) error {
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
