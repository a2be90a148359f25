// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/ericwq/vtline/config"
	"github.com/ericwq/vtline/frontend"
	"github.com/ericwq/vtline/keys"
	"github.com/ericwq/vtline/lineedit"
	"github.com/ericwq/vtline/report"
	"github.com/ericwq/vtline/scenario"
	"github.com/ericwq/vtline/terminal"
	"github.com/ericwq/vtline/util"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	exitOK      = 0
	exitFailed  = 1 // some steps failed
	exitAborted = 2 // usage, protocol or lifecycle error
)

var errFailed = errors.New("some tests failed")

type options struct {
	cfg     *config.Config
	verbose int
	builtin bool
	table   *keys.Table

	files []string // suite

	refCmd      string // cross
	builtinRef  bool
	simpleSteps int
	steps       int
	seed        uint64

	out    io.Writer
	errOut io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitAborted
	}

	root := newRootCmd(cfg, out, errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFailed):
		return exitFailed
	}
	fmt.Fprintln(errOut, "Error:", err)
	return exitAborted
}

func newRootCmd(cfg *config.Config, out, errOut io.Writer) *cobra.Command {
	o := &options{cfg: cfg, table: keys.NewTable(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           frontend.CommandName,
		Short:         "Drive a line editor through a virtual terminal and check what it shows",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.BoolVar(&cfg.PTY, "pty", cfg.PTY, "attach the program to a raw pseudo terminal instead of pipes")
	pf.DurationVar(&cfg.Settle, "settle", cfg.Settle, "how long to wait for the first output byte of a step")
	pf.DurationVar(&cfg.Idle, "idle", cfg.Idle, "quiet gap that ends the output of a step")
	pf.DurationVar(&cfg.ExitTimeout, "exit-timeout", cfg.ExitTimeout, "how long the program may take to exit after end of input")
	pf.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "virtual line capacity")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	pf.CountVarP(&o.verbose, "verbose", "v", "verbose log, repeat for trace")
	pf.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	pf.BoolVar(&o.builtin, "builtin", false, "test the built-in line editor instead of a program")

	root.AddCommand(newSuiteCmd(o), newCrossCmd(o), newKeysCmd(o), newVersionCmd(o))
	return root
}

func (o *options) setup() error {
	level, err := util.ParseLevel(o.cfg.LogLevel)
	if err != nil {
		return err
	}
	switch {
	case o.verbose == 1:
		level = min(level, slog.LevelDebug)
	case o.verbose > 1:
		level = util.LevelTrace
	}
	util.Logger.SetLevel(level)
	util.Logger.SetOutput(o.errOut)

	if !o.cfg.NoColor {
		if f, ok := o.out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			o.cfg.NoColor = true
		}
	}
	return o.cfg.Validate()
}

func newSuiteCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite [flags] [--] [command [args...]]",
		Short: "Replay the built-in suite or YAML suites on a line editor",
		Example: `  vtline suite -- ./cmdReader
  vtline suite --pty -f basic.yaml -f history.yaml -- vtline-ref
  vtline suite --builtin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.needCommand(args); err != nil {
				return err
			}

			suites := []*scenario.Suite{scenario.Official()}
			if len(o.files) > 0 {
				suites = suites[:0]
				for _, f := range o.files {
					s, err := scenario.LoadFile(f, o.table)
					if err != nil {
						return err
					}
					suites = append(suites, s)
				}
			}

			p := report.New(o.out, o.table, o.cfg.NoColor)
			failed := false
			for _, s := range suites {
				sum, err := o.runSuite(cmd.Context(), args, s, p)
				if err != nil {
					return err
				}
				failed = failed || !sum.Passed()
			}
			if len(suites) > 1 {
				p.Totals()
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringArrayVarP(&o.files, "file", "f", nil, "YAML suite file, may be repeated")
	return cmd
}

func (o *options) runSuite(ctx context.Context, argv []string, s *scenario.Suite, p *report.Printer) (scenario.Summary, error) {
	target, err := o.newTarget(ctx, argv, o.cfg.Capacity, o.builtin)
	if err != nil {
		return scenario.Summary{}, err
	}
	defer target.Close()

	util.Logger.Info("run suite", "suite", s.Name, "steps", len(s.Steps), "target", targetName(argv, o.builtin))
	sum, err := scenario.Run(ctx, target, s, p)
	if err != nil {
		return sum, err
	}
	if err := target.Finish(o.cfg.ExitTimeout); err != nil {
		return sum, fmt.Errorf("the program does not end properly: %w", err)
	}
	return sum, nil
}

func newCrossCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cross [flags] [--] [command [args...]]",
		Short: "Feed random keys to a reference and a tested editor and compare them",
		Example: `  vtline cross --ref vtline-ref -- ./cmdReader
  vtline cross --builtin-ref --seed 42 -- ./cmdReader`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.needCommand(args); err != nil {
				return err
			}
			if o.refCmd == "" && !o.builtinRef {
				return errors.New("a reference is required, use --ref or --builtin-ref")
			}

			capacity := o.cfg.Capacity
			if !cmd.Flags().Changed("capacity") && capacity == terminal.DefaultCapacity {
				capacity = lineedit.ReadBufSize
			}

			ref, err := o.newTarget(cmd.Context(), strings.Fields(o.refCmd), capacity, o.builtinRef)
			if err != nil {
				return fmt.Errorf("reference: %w", err)
			}
			defer ref.Close()

			test, err := o.newTarget(cmd.Context(), args, capacity, o.builtin)
			if err != nil {
				return err
			}
			defer test.Close()

			p := report.New(o.out, o.table, o.cfg.NoColor)
			opt := scenario.CrossOptions{SimpleSteps: o.simpleSteps, Steps: o.steps, Seed: o.seed}
			sum, err := scenario.Cross(cmd.Context(), ref, test, opt, p)
			if err != nil {
				return fmt.Errorf("seed %d: %w", sum.Seed, err)
			}
			if !sum.Passed() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&o.refCmd, "ref", "", "reference command line")
	cmd.Flags().BoolVar(&o.builtinRef, "builtin-ref", false, "use the built-in line editor as reference")
	cmd.Flags().IntVar(&o.simpleSteps, "simple", scenario.DefaultSimpleSteps, "warm up keys drawn from the simple alphabet")
	cmd.Flags().IntVar(&o.steps, "steps", 1000, "keys drawn from the complete alphabet")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed, 0 picks one")
	return cmd
}

func newKeysCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys [flags] [--] [command [args...]]",
		Short: "Send every key once to a key naming program and print what it reports",
		Example: `  vtline keys -- vtline-ref --probe
  vtline keys --builtin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.needCommand(args); err != nil {
				return err
			}

			var target frontend.Target
			var err error
			if o.builtin {
				target, err = frontend.NewLoopback(o.table, o.cfg.Capacity, lineedit.WithProbe())
			} else {
				target, err = o.newTarget(cmd.Context(), args, o.cfg.Capacity, false)
			}
			if err != nil {
				return err
			}
			defer target.Close()

			fmt.Fprintln(o.out, "*** Please ensure that the following key identifiers are correct. ***")
			lines, err := scenario.Probe(cmd.Context(), target)
			report.New(o.out, o.table, o.cfg.NoColor).PrintHistory(lines)
			if err != nil {
				return err
			}
			if err := target.Finish(o.cfg.ExitTimeout); err != nil {
				return fmt.Errorf("the program does not end properly: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(o.out, "%s\t\t: %s harness, %s\n", frontend.PackageName, frontend.PackageName, frontend.CommandName)
			frontend.PrintVersion(o.out)
		},
	}
}

func (o *options) needCommand(args []string) error {
	if o.builtin && len(args) > 0 {
		return errors.New("--builtin does not take a command")
	}
	if !o.builtin && len(args) == 0 {
		return errors.New("a command to test is required, or use --builtin")
	}
	return nil
}

func (o *options) newTarget(ctx context.Context, argv []string, capacity int, builtin bool) (frontend.Target, error) {
	if builtin {
		return frontend.NewLoopback(o.table, capacity)
	}
	return frontend.NewTester(ctx, argv, frontend.TesterOptions{
		Capacity: capacity,
		Settle:   o.cfg.Settle,
		Idle:     o.cfg.Idle,
		Spawn:    frontend.SpawnOptions{PTY: o.cfg.PTY, Rows: 24, Cols: 80},
	})
}

func targetName(argv []string, builtin bool) string {
	if builtin {
		return "builtin"
	}
	return strings.Join(argv, " ")
}
