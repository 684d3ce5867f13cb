// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cspstat summarizes the log of a constraint-solver benchmark sweep.
//
// Usage:
//
//	cspstat [flags] graph [flags] [input.txt ...]
//	cspstat [flags] table [flags] [input.txt ...]
//
// The inputs default to output.txt in the current directory; "-" reads
// standard input. Only run summary lines are used, such as
//
//	Input dimension_25.txt - ffc - indomain - up Labeling: 120ms Constraints: 14ms Backtracks: 3
//
// Every summary is one trial of the configuration named by its three
// heuristics. Each configuration is expected to run three trials per
// dimension, and cspstat reports the mean of each group of three.
//
// The graph command writes one pgfplots picture per measurement,
// labelingTimes.txt, constraintsTimes.txt and backtracks.txt, each with
// a series per configuration. Times are in seconds. The -png, -svg and
// -csv flags also write the same graphs as images or CSV.
//
// The table command writes table.txt, a LaTeX table of mean labeling
// times with a row per configuration and a column per dimension. The
// -csv and -html flags also write table.csv and table.html.
//
// Lines that look like summaries but cannot be parsed are logged and
// skipped. If any configuration has an incomplete group of trials,
// cspstat reports it, writes nothing and exits with status 1.
//
// # Configuration
//
// The -config flag names a YAML file that overrides the defaults:
//
//	graph:                 # record filter of graph mode
//	  minDimension: 25
//	  maxDimension: 100
//	  excludeSentinels: true
//	table:                 # record filter of table mode
//	  minDimension: 8
//	  maxDimension: 100
//	  excludeSentinels: false
//	order: sorted          # graph series order: sorted or insertion
//	palette: [red, green, blue, ...]
//	marks: [circle, square]
//	dimensions: [8, 9, 10, 11, 12, 25, 50, 75, 100]
//	database:
//	  driver: sqlite3      # or mysql
//	  dsn: results.db
//
// The -min-dim, -max-dim, -exclude-sentinels and -order flags override
// the file for the selected mode.
//
// # Storage
//
// With a database configured, every accepted trial is stored as part
// of a new run. The -run flag renders a stored run instead of reading
// log files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// A UsageError reports a command line that names no mode, an unknown
// mode, or bad flags.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

const usageText = "usage: cspstat [flags] graph|table [flags] [input.txt ...]\n" +
	"Run 'cspstat --help' for details.\n"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cspstat(ctx, os.Stdout, os.Stderr, os.Args)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps the error returned by cspstat to a process exit status.
func exitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		return 2
	}
	return 1
}

// cspstat runs the command line args (including the program name),
// writing help to stdout and diagnostics to stderr.
func cspstat(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	err := newCommand(stdout, stderr).Run(ctx, args)
	if err == nil {
		return nil
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "cspstat: %v\n%s", err, usageText)
	} else {
		fmt.Fprintf(stderr, "cspstat: %v\n", err)
	}
	return err
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            "cspstat",
		Usage:           "summarize the log of a constraint-solver benchmark sweep",
		UsageText:       "cspstat [flags] graph|table [flags] [input.txt ...]",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags:           globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, setupLogging(stderr, cmd.String("log-level"))
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return &UsageError{"missing mode"}
			}
			return &UsageError{fmt.Sprintf("unknown mode %q", cmd.Args().First())}
		},
		Commands:       []*cli.Command{graphCmd(), tableCmd()},
		OnUsageError:   onUsageError,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// onUsageError reports flag parse errors of every command as a
// UsageError.
func onUsageError(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
	return &UsageError{err.Error()}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "read settings from YAML `file`",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "log `level` (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "db-driver",
			Usage: "store accepted trials with database `driver` (sqlite3, mysql)",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "database data source `name`",
		},
		&cli.IntFlag{
			Name:  "min-dim",
			Usage: "ignore trials below dimension `n`",
		},
		&cli.IntFlag{
			Name:  "max-dim",
			Usage: "ignore trials above dimension `n`",
		},
		&cli.BoolFlag{
			Name:  "exclude-sentinels",
			Usage: "ignore the leftmost variable and enum value configurations",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "graph series `order`: sorted or insertion",
		},
		&cli.StringFlag{
			Name:    "out-dir",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "write artifacts to `dir`",
		},
		&cli.IntFlag{
			Name:  "run",
			Usage: "render stored run `id` instead of reading logs",
		},
	}
}

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Usage:     "write pgfplots graphs of the three measurements",
		ArgsUsage: "[input.txt ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "png", Usage: "also write PNG charts"},
			&cli.BoolFlag{Name: "svg", Usage: "also write SVG charts"},
			&cli.BoolFlag{Name: "csv", Usage: "also write the graph points as CSV"},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, graphMode)
		},
	}
}

func tableCmd() *cli.Command {
	return &cli.Command{
		Name:      "table",
		Usage:     "write a LaTeX table of mean labeling times",
		ArgsUsage: "[input.txt ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "csv", Usage: "also write table.csv"},
			&cli.BoolFlag{Name: "html", Usage: "also write table.html"},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, tableMode)
		},
	}
}
