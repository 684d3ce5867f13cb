// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps accepted trials in a SQL database so sweeps can
// be compared and re-rendered without the logs they came from.
//
// Every invocation that stores trials opens a Run; the run's trials are
// numbered in the order they were read. MySQL data source names must
// set parseTime=true.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/cspbench/cspstat/solvelog"
)

// DB is a database of runs. It's safe for concurrent use by multiple
// goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun   *sql.Stmt
	insertTrial *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// supported. The caller must import the driver.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	switch driverName {
	case "sqlite3", "mysql":
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", driverName)
	}
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %v", err)
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created {{if .sqlite3}}TIMESTAMP{{else}}DATETIME{{end}},
	Source VARCHAR(1024)
);
CREATE TABLE IF NOT EXISTS Trials (
	RunID BIGINT UNSIGNED,
	TrialID BIGINT UNSIGNED,
	Variable VARCHAR(255),
	Value VARCHAR(255),
	OrderHeuristic VARCHAR(255),
	Dimension INT,
	LabelingMS BIGINT,
	ConstraintsMS BIGINT,
	Backtracks BIGINT,
	PRIMARY KEY (RunID, TrialID),
{{if not .sqlite3}}
	Index (Variable(100), Value(100), OrderHeuristic(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS TrialsKey ON Trials(Variable, Value, OrderHeuristic);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Created, Source) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertTrial, err = db.sql.Prepare(`INSERT INTO Trials(RunID, TrialID, Variable, Value, OrderHeuristic,
	Dimension, LabelingMS, ConstraintsMS, Backtracks) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	return nil
}

// now is time.Now, replaced in tests.
var now = time.Now

// A Run is one batch of stored trials.
type Run struct {
	ID      int64
	Created time.Time
	// Source describes where the trials came from, usually the
	// input file names.
	Source string

	// trialID is the number of the next trial to insert.
	trialID int64
	db      *DB
}

// NewRun returns a run for storing new trials.
func (db *DB) NewRun(ctx context.Context, source string) (*Run, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertRun.ExecContext(ctx, created, source)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Created: created, Source: source, db: db}, nil
}

// Insert appends results to run r in a single transaction.
func (r *Run) Insert(ctx context.Context, results []*solvelog.Result) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertTrial)
	next := r.trialID
	for _, res := range results {
		if _, err = stmt.ExecContext(ctx, r.ID, next,
			res.Key.Variable, res.Key.Value, res.Key.Order,
			res.Dimension, res.LabelingMS, res.ConstraintsMS, res.Backtracks); err != nil {
			return fmt.Errorf("store: insert trial %d of run %d: %w", next, r.ID, err)
		}
		next++
	}
	r.trialID = next
	return nil
}

// Runs returns every run, oldest first.
func (db *DB) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Created, Source FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		r := &Run{db: db}
		if err := rows.Scan(&r.ID, &r.Created, &r.Source); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Trials returns the trials of run runID in the order they were
// inserted. The results carry no source position.
func (db *DB) Trials(ctx context.Context, runID int64) ([]*solvelog.Result, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT Variable, Value, OrderHeuristic,
	Dimension, LabelingMS, ConstraintsMS, Backtracks
	FROM Trials WHERE RunID = ? ORDER BY TrialID`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []*solvelog.Result
	for rows.Next() {
		res := new(solvelog.Result)
		if err := rows.Scan(&res.Key.Variable, &res.Key.Value, &res.Key.Order,
			&res.Dimension, &res.LabelingMS, &res.ConstraintsMS, &res.Backtracks); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if len(results) == 0 {
		var n int
		if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE RunID = ?", runID).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, &RunNotFoundError{runID}
		}
	}
	return results, nil
}

// A RunNotFoundError reports a run ID with no row in Runs.
type RunNotFoundError struct {
	ID int64
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("store: run %d not found", e.ID)
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertTrial.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
