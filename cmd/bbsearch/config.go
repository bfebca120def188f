package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beaverkit/beaver/search"
)

// settings is the merged run configuration: defaults, then the config
// file, then any explicitly set flags.
type settings struct {
	States       int    `yaml:"states"`
	BatchSize    uint64 `yaml:"batch_size"`
	Workers      int    `yaml:"workers"`
	CyclerSteps  uint64 `yaml:"cycler_steps"`
	BouncerSteps uint64 `yaml:"bouncer_steps"`
	DB           string `yaml:"db"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

func defaultSettings() settings {
	o := search.DefaultOptions()
	return settings{
		States:       4,
		BatchSize:    o.BatchSize,
		Workers:      o.Workers,
		CyclerSteps:  o.Deciders.CyclerSteps,
		BouncerSteps: o.Deciders.BouncerSteps,
	}
}

// resolve builds the settings for cmd, reading the config file named by
// the persistent --config flag when present.
func resolve(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	f := cmd.Flags()
	if f.Changed("states") {
		s.States, _ = f.GetInt("states")
	}
	if f.Changed("batch-size") {
		s.BatchSize, _ = f.GetUint64("batch-size")
	}
	if f.Changed("workers") {
		s.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("cycler-steps") {
		s.CyclerSteps, _ = f.GetUint64("cycler-steps")
	}
	if f.Changed("bouncer-steps") {
		s.BouncerSteps, _ = f.GetUint64("bouncer-steps")
	}
	if f.Changed("db") {
		s.DB, _ = f.GetString("db")
	}
	if f.Changed("metrics-addr") {
		s.MetricsAddr, _ = f.GetString("metrics-addr")
	}
	return s, nil
}

func (s settings) searchOptions() search.Options {
	o := search.DefaultOptions()
	o.BatchSize = s.BatchSize
	o.Workers = s.Workers
	o.Deciders.CyclerSteps = s.CyclerSteps
	o.Deciders.BouncerSteps = s.BouncerSteps
	return o
}

// newLogger builds the process logger from the persistent --log-json flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	if jsonMode, _ := cmd.Flags().GetBool("log-json"); jsonMode {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// sweepFlags registers the flags shared by commands that run machines.
func sweepFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("states", "n", 4, "State count to sweep")
	cmd.Flags().Uint64("batch-size", defaultSettings().BatchSize, "Ids per batch")
	cmd.Flags().Int("workers", defaultSettings().Workers, "Concurrent batch workers")
	cmd.Flags().Uint64("cycler-steps", defaultSettings().CyclerSteps, "Cycler step ceiling")
	cmd.Flags().Uint64("bouncer-steps", defaultSettings().BouncerSteps, "Bouncer step ceiling")
}
