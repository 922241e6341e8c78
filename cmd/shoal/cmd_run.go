package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/core/world"
	"github.com/zeusync/shoalsync/internal/injector"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation headless for a number of ticks",
		Long: `Run ticks the simulation without a viewer and prints a summary.

Examples:
  shoal run --ticks 1000
  shoal run -c shoal.yaml --agents 500 --json
  shoal run --frame > final.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ticks") {
				cfg.Simulation.Ticks, _ = cmd.Flags().GetUint64("ticks")
			}

			w, err := injector.InitializeWorld(cfg)
			if err != nil {
				return fmt.Errorf("initialize world: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ctx = log.ContextWithRun(ctx, w.RunID())
			logger := log.Provide().WithContext(ctx)
			if err := runTicks(ctx, w, cfg.Simulation.Ticks, cfg.Simulation.StatsEvery, logger); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if frameOut, _ := cmd.Flags().GetBool("frame"); frameOut {
				return writeJSON(out, w.Frame())
			}
			stats := w.Stats()
			if jsonOut {
				return writeJSON(out, stats)
			}
			fmt.Fprintf(out, "run %s: %d agents, %d ticks in %v\n", stats.RunID, stats.Agents, stats.Ticks, stats.TotalTime)
			for _, m := range stats.Systems {
				fmt.Fprintf(out, "  %-10s %-8s processed=%d\n", m.Name, m.State, m.EntitiesProcessed)
			}
			return nil
		},
	}

	cmd.Flags().Uint64("ticks", 0, "Override simulation.ticks")
	cmd.Flags().Bool("frame", false, "Print the final frame as JSON instead of a summary")
	return cmd
}

// runTicks stops early without error when ctx is canceled by a signal.
func runTicks(ctx context.Context, w *world.World, ticks, statsEvery uint64, logger log.Log) error {
	for i := uint64(1); i <= ticks; i++ {
		if err := w.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				logger.Warn("Run interrupted", log.Uint64("tick", w.TickCount()))
				return nil
			}
			return err
		}
		if statsEvery > 0 && i%statsEvery == 0 {
			stats := w.Stats()
			logger.Info("Tick stats",
				log.Uint64("tick", stats.Ticks),
				log.Duration("last", stats.LastDuration),
				log.Duration("total", stats.TotalTime),
			)
		}
	}
	return nil
}
