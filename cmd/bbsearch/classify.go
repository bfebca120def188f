package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/decider"
	"github.com/beaverkit/beaver/enumerate"
	"github.com/beaverkit/beaver/machine"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [table]",
	Short: "Classify one machine",
	Long: `Classifies a single machine, given either its compact table text
(e.g. "1RB1LB_1LA---") or --id together with --states.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve(cmd)
		if err != nil {
			return err
		}

		var tb machine.TransitionTable
		switch {
		case len(args) == 1:
			if tb, err = machine.ParseTable(args[0]); err != nil {
				return err
			}
		case cmd.Flags().Changed("id"):
			id, _ := cmd.Flags().GetUint64("id")
			if tb, err = codec.Decode(codec.MachineID(id), cfg.States); err != nil {
				return err
			}
		default:
			return fmt.Errorf("need a table argument or --id")
		}

		fmt.Printf("machine: %s\n", tb.String())
		if id, err := codec.Encode(&tb); err == nil {
			fmt.Printf("id: %d (%d states)\n", id, tb.NStates)
		}

		verdict, reason := enumerate.Prescreen(&tb)
		switch verdict {
		case enumerate.VerdictHalt:
			fmt.Println("verdict: halted after 1 step")
			return nil
		case enumerate.VerdictReject:
			fmt.Printf("verdict: non-halting: trivial pattern (%s)\n", reason)
			return nil
		}

		chain, err := decider.NewChain(decider.Options{
			CyclerSteps:  cfg.CyclerSteps,
			BouncerSteps: cfg.BouncerSteps,
		})
		if err != nil {
			return err
		}
		fmt.Printf("verdict: %s\n", chain.Decide(tb))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().IntP("states", "n", 4, "State count for --id decoding")
	classifyCmd.Flags().Uint64("id", 0, "Machine id to decode and classify")
	classifyCmd.Flags().Uint64("cycler-steps", defaultSettings().CyclerSteps, "Cycler step ceiling")
	classifyCmd.Flags().Uint64("bouncer-steps", defaultSettings().BouncerSteps, "Bouncer step ceiling")
}
