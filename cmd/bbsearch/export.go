package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beaverkit/beaver/bbfile"
	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/machine"
	"github.com/beaverkit/beaver/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored undecided machines as a seed database",
	Long: `Reads the undecided machines of a finished 5-state sweep from the
SQLite database and writes them in the bbchallenge 30-byte seed format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve(cmd)
		if err != nil {
			return err
		}
		if cfg.DB == "" {
			return fmt.Errorf("--db is required")
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--out is required")
		}
		// The seed format holds 5-state machines only, so the command's own
		// flag decides the state count rather than the sweep settings.
		states, _ := cmd.Flags().GetInt("states")

		st, err := store.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ids, err := st.UndecidedIDs(context.Background(), states)
		if err != nil {
			return err
		}
		tables := make([]machine.TransitionTable, 0, len(ids))
		for _, id := range ids {
			tb, err := codec.Decode(id, states)
			if err != nil {
				return err
			}
			tables = append(tables, tb)
		}

		stepLimit, _ := cmd.Flags().GetUint32("step-limit")
		tapeLimit, _ := cmd.Flags().GetUint32("tape-limit")
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		header := bbfile.SeedHeader{
			UndecidedStepLimit: stepLimit,
			UndecidedTapeLimit: tapeLimit,
			Sorted:             true,
		}
		if err := bbfile.WriteSeedFile(f, header, tables); err != nil {
			return err
		}
		fmt.Printf("wrote %d machines to %s\n", len(tables), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().IntP("states", "n", 5, "State count of the stored sweep")
	exportCmd.Flags().String("db", "", "SQLite database of a previous run")
	exportCmd.Flags().String("out", "", "Output seed database path")
	exportCmd.Flags().Uint32("step-limit", 0, "Step ceiling recorded in the header")
	exportCmd.Flags().Uint32("tape-limit", 0, "Tape ceiling recorded in the header")
}
