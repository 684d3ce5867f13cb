// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/cspbench/cspstat/config"
	"github.com/cspbench/cspstat/internal/logging"
	"github.com/cspbench/cspstat/report"
	"github.com/cspbench/cspstat/solvelog"
	"github.com/cspbench/cspstat/store"
	"github.com/cspbench/cspstat/trialagg"
)

type mode int

const (
	graphMode mode = iota
	tableMode
)

func (m mode) String() string {
	if m == graphMode {
		return "graph"
	}
	return "table"
}

// defaultInput is read when no input files are named.
const defaultInput = "output.txt"

func setupLogging(w io.Writer, level string) error {
	if err := logging.Setup(w, level); err != nil {
		return &UsageError{err.Error()}
	}
	return nil
}

// loadConfig reads the configuration file and applies the flags that
// override it.
func loadConfig(cmd *cli.Command, m mode) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		var invalid *config.InvalidError
		if errors.As(err, &invalid) {
			return nil, &UsageError{err.Error()}
		}
		return nil, err
	}
	filter := &cfg.Graph
	if m == tableMode {
		filter = &cfg.Table
	}
	if cmd.IsSet("min-dim") {
		filter.MinDimension = int(cmd.Int("min-dim"))
	}
	if cmd.IsSet("max-dim") {
		filter.MaxDimension = int(cmd.Int("max-dim"))
	}
	if cmd.IsSet("exclude-sentinels") {
		filter.ExcludeSentinels = cmd.Bool("exclude-sentinels")
	}
	if cmd.IsSet("order") {
		cfg.Order = cmd.String("order")
	}
	if cmd.IsSet("db-driver") {
		cfg.Database.Driver = cmd.String("db-driver")
	}
	if cmd.IsSet("db") {
		cfg.Database.DSN = cmd.String("db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, &UsageError{err.Error()}
	}
	return cfg, nil
}

// run reads the trials, aggregates them and writes the artifacts of
// mode m.
func run(ctx context.Context, cmd *cli.Command, m mode) error {
	cfg, err := loadConfig(cmd, m)
	if err != nil {
		return err
	}

	var db *store.DB
	if cfg.Database.DSN != "" {
		db, err = store.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
	}

	order := cfg.EntryOrder()
	if m == tableMode {
		order = trialagg.OrderSorted
	}
	agg := trialagg.New(order)

	if cmd.IsSet("run") {
		if db == nil {
			return &UsageError{"-run needs a database"}
		}
		if cmd.Args().Len() > 0 {
			return &UsageError{"-run does not take input files"}
		}
		if err := readRun(ctx, db, int64(cmd.Int("run")), agg); err != nil {
			return err
		}
	} else {
		paths := cmd.Args().Slice()
		if len(paths) == 0 {
			paths = []string{defaultInput}
		}
		filter := cfg.Graph
		if m == tableMode {
			filter = cfg.Table
		}
		results, err := readLogs(ctx, paths, filter.Options(), agg)
		if err != nil {
			return err
		}
		if db != nil {
			if err := storeRun(ctx, db, strings.Join(paths, " "), results); err != nil {
				return err
			}
		}
	}
	log.Info().Int("entries", agg.Len()).Str("mode", m.String()).Msg("aggregated")

	var arts artifacts
	switch m {
	case graphMode:
		err = renderGraphs(&arts, agg.Entries(), cfg.Style(), cmd)
	case tableMode:
		err = renderTable(&arts, agg.Entries(), cfg.Dimensions, cmd)
	}
	if err != nil {
		return err
	}
	return arts.write(cmd.String("out-dir"))
}

// readLogs feeds every trial in paths to agg and returns the trials.
// It stops early if ctx is canceled.
func readLogs(ctx context.Context, paths []string, opts solvelog.Options, agg *trialagg.Aggregator) ([]*solvelog.Result, error) {
	files := solvelog.Files{Paths: paths, AllowStdin: true, Options: opts}
	var results []*solvelog.Result
	for files.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch rec := files.Result().(type) {
		case *solvelog.MalformedRecordError:
			log.Warn().
				Str("file", rec.FileName).
				Int("line", rec.Line).
				Str("reason", rec.Msg).
				Msg("skipping malformed record")
		case *solvelog.Result:
			agg.Ingest(rec)
			results = append(results, rec)
		}
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	st := files.Stats()
	log.Info().
		Int("lines", st.Lines).
		Int("marked", st.Marked).
		Int("trials", st.Results).
		Int("short", st.Short).
		Int("outOfRange", st.OutOfRange).
		Int("sentinel", st.Sentinel).
		Int("malformed", st.Malformed).
		Msg("read logs")
	return results, nil
}

func readRun(ctx context.Context, db *store.DB, id int64, agg *trialagg.Aggregator) error {
	results, err := db.Trials(ctx, id)
	if err != nil {
		return err
	}
	for _, r := range results {
		agg.Ingest(r)
	}
	log.Info().Int64("run", id).Int("trials", len(results)).Msg("read stored run")
	return nil
}

func storeRun(ctx context.Context, db *store.DB, source string, results []*solvelog.Result) error {
	r, err := db.NewRun(ctx, source)
	if err != nil {
		return fmt.Errorf("storing trials: %w", err)
	}
	if err := r.Insert(ctx, results); err != nil {
		return fmt.Errorf("storing trials: %w", err)
	}
	log.Info().Int64("run", r.ID).Int("trials", len(results)).Msg("stored run")
	return nil
}

// artifacts collects rendered files so that nothing is written unless
// every artifact rendered.
type artifacts struct {
	names []string
	data  [][]byte
}

func (a *artifacts) add(name string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	a.names = append(a.names, name)
	a.data = append(a.data, buf.Bytes())
	return nil
}

func (a *artifacts) write(dir string) error {
	for i, name := range a.names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, a.data[i], 0o666); err != nil {
			return err
		}
		log.Debug().Str("path", path).Int("bytes", len(a.data[i])).Msg("wrote artifact")
	}
	return nil
}

func renderGraphs(arts *artifacts, entries []*trialagg.Entry, style report.Style, cmd *cli.Command) error {
	graphs, err := report.BuildGraphs(entries, style)
	if err != nil {
		return err
	}
	for _, g := range graphs {
		base := g.Kind.BaseName()
		if err := arts.add(base+".txt", func(w io.Writer) error { return report.WritePGFPlot(w, g) }); err != nil {
			return err
		}
		if cmd.Bool("csv") {
			if err := arts.add(base+".csv", func(w io.Writer) error { return report.WriteGraphCSV(w, g) }); err != nil {
				return err
			}
		}
		for _, format := range []string{report.PNG, report.SVG} {
			if !cmd.Bool(format) {
				continue
			}
			if err := arts.add(base+"."+format, func(w io.Writer) error { return report.WriteChart(w, g, format) }); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderTable(arts *artifacts, entries []*trialagg.Entry, dims []int, cmd *cli.Command) error {
	tab, err := report.BuildTable(entries, dims)
	if err != nil {
		return err
	}
	if err := arts.add("table.txt", func(w io.Writer) error { return report.WriteTabular(w, tab) }); err != nil {
		return err
	}
	if cmd.Bool("csv") {
		if err := arts.add("table.csv", func(w io.Writer) error { return report.WriteCSV(w, tab) }); err != nil {
			return err
		}
	}
	if cmd.Bool("html") {
		if err := arts.add("table.html", func(w io.Writer) error { return report.WriteHTML(w, tab) }); err != nil {
			return err
		}
	}
	return nil
}
