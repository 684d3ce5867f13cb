// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the named settings of a cspstat run and loads
// them from YAML.
//
// A configuration file only needs the keys it changes:
//
//	graph:
//	  minDimension: 50
//	order: insertion
//	palette: [black, gray]
//
// Keys it omits keep their defaults.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/cspbench/cspstat/report"
	"github.com/cspbench/cspstat/solvelog"
	"github.com/cspbench/cspstat/trialagg"
)

// Filter selects the log records a report is built from.
type Filter struct {
	MinDimension     int  `yaml:"minDimension"`
	MaxDimension     int  `yaml:"maxDimension"`
	ExcludeSentinels bool `yaml:"excludeSentinels"`
}

// Options returns f as parser options.
func (f Filter) Options() solvelog.Options {
	return solvelog.Options{
		MinDimension:     f.MinDimension,
		MaxDimension:     f.MaxDimension,
		ExcludeSentinels: f.ExcludeSentinels,
	}
}

func (f Filter) validate(name string) error {
	if f.MinDimension < 0 {
		return fmt.Errorf("config: %s.minDimension %d is negative", name, f.MinDimension)
	}
	if f.MinDimension > f.MaxDimension {
		return fmt.Errorf("config: %s window [%d,%d] is empty", name, f.MinDimension, f.MaxDimension)
	}
	return nil
}

// Database names an optional store for accepted trials.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Config is the configuration of a run.
type Config struct {
	// Graph and Table are the record filters of the two modes.
	Graph Filter `yaml:"graph"`
	Table Filter `yaml:"table"`

	// Order is the entry order of graph mode, "sorted" or "insertion".
	// Table mode is always sorted.
	Order string `yaml:"order"`

	Palette []string `yaml:"palette"`
	Marks   []string `yaml:"marks"`

	// Dimensions are the table columns, in increasing order.
	Dimensions []int `yaml:"dimensions"`

	Database Database `yaml:"database"`
}

// Default returns the built-in configuration. Graph mode covers
// dimensions 25 to 100 without the sentinel configurations; table mode
// covers 8 to 100 and keeps them.
func Default() *Config {
	return &Config{
		Graph:      Filter{MinDimension: 25, MaxDimension: 100, ExcludeSentinels: true},
		Table:      Filter{MinDimension: 8, MaxDimension: 100},
		Order:      trialagg.OrderSorted.String(),
		Palette:    append([]string(nil), report.DefaultStyle.Palette...),
		Marks:      append([]string(nil), report.DefaultStyle.Marks...),
		Dimensions: append([]int(nil), report.DefaultDimensions...),
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		log.Debug().Msg("no config file, using defaults")
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &InvalidError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InvalidError{Path: path, Err: err}
	}
	log.Debug().
		Str("path", path).
		Str("order", cfg.Order).
		Ints("dimensions", cfg.Dimensions).
		Msg("loaded config")
	return cfg, nil
}

// An InvalidError reports a configuration file that could be read but
// not decoded or validated.
type InvalidError struct {
	Path string
	Err  error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%v (in %s)", e.Err, e.Path)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if err := c.Graph.validate("graph"); err != nil {
		return err
	}
	if err := c.Table.validate("table"); err != nil {
		return err
	}
	if _, err := trialagg.ParseOrder(c.Order); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("config: palette is empty")
	}
	if len(c.Marks) == 0 {
		return fmt.Errorf("config: marks is empty")
	}
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("config: dimensions is empty")
	}
	for i := 1; i < len(c.Dimensions); i++ {
		if c.Dimensions[i] <= c.Dimensions[i-1] {
			return fmt.Errorf("config: dimensions must increase, got %d after %d", c.Dimensions[i], c.Dimensions[i-1])
		}
	}
	switch c.Database.Driver {
	case "", "sqlite3", "mysql":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Database.DSN != "" && c.Database.Driver == "" {
		return fmt.Errorf("config: database dsn set without a driver")
	}
	return nil
}

// EntryOrder returns the parsed graph-mode entry order.
func (c *Config) EntryOrder() trialagg.Order {
	o, err := trialagg.ParseOrder(c.Order)
	if err != nil {
		log.Warn().Str("order", c.Order).Msg("unknown order, using sorted")
		return trialagg.OrderSorted
	}
	return o
}

// Style returns the series style of graph mode.
func (c *Config) Style() report.Style {
	return report.Style{Palette: c.Palette, Marks: c.Marks}
}
