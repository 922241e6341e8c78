package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/injector"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation and stream frames over websocket",
		Long: `Serve ticks the simulation in real time and broadcasts every frame as
JSON to websocket clients on /ws. /healthz reports liveness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}

			streamer, err := injector.InitializeStreamer(cfg)
			if err != nil {
				return fmt.Errorf("initialize server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := streamer.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "streaming on ws://%s/ws\n", streamer.Addr())

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := streamer.Stop(shutdownCtx); err != nil {
				log.Provide().Error("Error stopping server", log.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Override server.addr")
	return cmd
}
