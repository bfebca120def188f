package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beaverkit/beaver/codec"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the size of a state space",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve(cmd)
		if err != nil {
			return err
		}
		total, err := codec.TotalMachineCount(cfg.States)
		if err != nil {
			return fmt.Errorf("%d states: %w", cfg.States, err)
		}
		batches := (total + cfg.BatchSize - 1) / cfg.BatchSize
		fmt.Printf("%d states: %d machines, %d batches of %d\n",
			cfg.States, total, batches, cfg.BatchSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().IntP("states", "n", 4, "State count")
	countCmd.Flags().Uint64("batch-size", defaultSettings().BatchSize, "Ids per batch")
}
