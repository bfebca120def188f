package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:   "bbsearch",
	Short: "bbsearch sweeps busy beaver machine spaces",
	Long: `bbsearch enumerates every Turing machine of a given state count,
screens out the trivial ones statically and runs the rest through the
cycler and bouncer deciders, tracking the longest-running halter.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file; flags override it")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON instead of text")
}
