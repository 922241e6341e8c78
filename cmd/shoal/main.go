package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shoal",
		Short: "Fish schooling simulator",
		Long: `shoal simulates emergent schooling from local per-agent rules.

Every tick each fish picks one visible neighbor and steers away from it,
aligns with it or swims toward it, while idle drift nudges its targets.`,
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (.yaml, .yml or .toml)")
	flags.Bool("json", false, "Output as JSON")
	flags.Int("agents", 0, "Override simulation.agents")
	flags.Uint64("seed", 0, "Override simulation.seed")
	flags.Int("workers", 0, "Override simulation.workers")
	flags.String("log-level", "", "Override logging.level")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newServeCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				_ = writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shoal version %s\n", version)
		},
	}
}
