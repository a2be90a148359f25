// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ericwq/vtline/frontend"
	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/lineedit"
	"github.com/ericwq/vtline/util"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

var usage = `Usage:
  ` + frontend.CommandRefName + ` [--version] [--help]
  ` + frontend.CommandRefName + ` [--probe] [--prompt PROMPT] [--size SIZE]
Options:
  -h, --help     print this message
  -v, --version  print version information
  -p, --probe    print the name of every key instead of editing
      --prompt   prompt string (default "cmd> ")
      --size     line buffer size (default 65536)
`

type Config struct {
	version bool
	probe   bool
	prompt  string
	size    int
}

func printUsage(w io.Writer, hint string) {
	if hint != "" {
		fmt.Fprintf(w, "Hints: %s\n", hint)
	}
	fmt.Fprint(w, usage)
}

func parseFlags(progname string, args []string) (config *Config, output string, err error) {
	flagSet := flag.NewFlagSet(progname, flag.ContinueOnError)
	var buf bytes.Buffer
	flagSet.SetOutput(&buf)
	flagSet.Usage = func() {}

	var conf Config
	flagSet.BoolVarP(&conf.version, "version", "v", false, "print version information")
	flagSet.BoolVarP(&conf.probe, "probe", "p", false, "print key names")
	flagSet.StringVar(&conf.prompt, "prompt", lineedit.DefaultPrompt, "prompt string")
	flagSet.IntVar(&conf.size, "size", lineedit.ReadBufSize, "line buffer size")

	err = flagSet.Parse(args)
	if err != nil {
		return nil, buf.String(), err
	}
	if flagSet.NArg() > 0 {
		return nil, "", fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	if conf.size < 2 {
		return nil, "", fmt.Errorf("size must be at least 2, got %d", conf.size)
	}
	return &conf, buf.String(), nil
}

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(progname string, args []string, in *os.File, out, errOut io.Writer) int {
	conf, output, err := parseFlags(progname, args)
	if errors.Is(err, flag.ErrHelp) {
		printUsage(out, "")
		return 0
	} else if err != nil {
		fmt.Fprint(errOut, output)
		printUsage(errOut, err.Error())
		return 2
	}

	if conf.version {
		fmt.Fprintf(out, "%s\t\t: %s reference editor, %s\n", frontend.PackageName,
			frontend.PackageName, frontend.CommandRefName)
		frontend.PrintVersion(out)
		return 0
	}

	// an interactive run needs the keys byte by byte
	if term.IsTerminal(int(in.Fd())) {
		state, err := util.MakeRawTTY(int(in.Fd()))
		if err != nil {
			fmt.Fprintf(errOut, "raw mode: %s\n", err)
			return 1
		}
		defer term.Restore(int(in.Fd()), state)
	}

	opts := []lineedit.Option{lineedit.WithPrompt(conf.prompt), lineedit.WithBufferSize(conf.size)}
	if conf.probe {
		opts = append(opts, lineedit.WithProbe())
	}

	util.Logger.SetOutput(errOut)
	util.Logger.Debug("start", "probe", conf.probe, "size", conf.size)

	ed := lineedit.New(keys.NewTable(), out, opts...)
	if err := ed.Run(in); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}
