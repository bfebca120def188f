package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/beaverkit/beaver/bbfile"
	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/machine"
	"github.com/beaverkit/beaver/search"
	"github.com/beaverkit/beaver/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sweep a full state space",
	Long: `Sweeps every machine of the given state count in fixed-size batches.
With --db the finished batches are persisted and an interrupted sweep
resumes where it left off.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd)

		opts := cfg.searchOptions()
		if cfg.MetricsAddr != "" {
			reg := prometheus.NewRegistry()
			opts.Metrics = search.NewMetrics(reg)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			go func() {
				logger.Info("metrics server listening", "addr", cfg.MetricsAddr)
				if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
					logger.Error("metrics server failed", "error", err)
				}
			}()
		}

		searcher, err := search.New(cfg.States, opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var prior []search.BatchSummary
		var save search.BatchFunc
		if cfg.DB != "" {
			st, err := store.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			if prior, err = st.Batches(ctx, cfg.States); err != nil {
				return err
			}
			save = func(b search.BatchSummary) error {
				return st.SaveBatch(ctx, cfg.States, b)
			}
		}

		logger.Info("sweep starting",
			"states", cfg.States,
			"machines", searcher.Total(),
			"batches", searcher.NumBatches(),
			"resumed_batches", len(prior),
			"workers", opts.Workers,
		)
		begin := time.Now()
		sum, err := searcher.Resume(ctx, prior, save)
		if err != nil {
			logger.Error("sweep stopped", "error", err, "batches_done", sum.Batches)
			return err
		}
		logger.Info("sweep finished",
			"elapsed", time.Since(begin),
			"scanned", sum.Scanned,
			"halted", sum.Halted,
			"non_halting", sum.NonHalting(),
			"undecided", sum.Undecided,
			"champion_steps", sum.Champion.Steps,
			"champion_ones", sum.OnesChampion.Ones,
		)
		fmt.Println(sum.String())
		if sum.Champion.Steps > 0 {
			tb, err := codec.Decode(sum.Champion.ID, cfg.States)
			if err != nil {
				return err
			}
			fmt.Printf("champion: %s (id %d)\n", tb.String(), sum.Champion.ID)
		}

		if out, _ := cmd.Flags().GetString("undecided-out"); out != "" && len(sum.UndecidedIDs) > 0 {
			tables := make([]machine.TransitionTable, 0, len(sum.UndecidedIDs))
			for _, id := range sum.UndecidedIDs {
				tb, err := codec.Decode(id, cfg.States)
				if err != nil {
					return err
				}
				tables = append(tables, tb)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			if err := bbfile.WriteTables(f, tables); err != nil {
				return err
			}
			logger.Info("undecided machines written", "path", out, "count", len(tables))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	sweepFlags(runCmd)
	runCmd.Flags().String("db", "", "SQLite database for persisting and resuming the sweep")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.Flags().String("undecided-out", "", "Write undecided machines to this text file")
}
