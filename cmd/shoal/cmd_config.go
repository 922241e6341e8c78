package main

import (
	"github.com/spf13/cobra"

	"github.com/zeusync/shoalsync/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and flag
overrides are applied. The output can be saved and edited.

Examples:
  shoal config > shoal.yaml
  shoal config --format toml --agents 500 > shoal.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}
			name, _ := cmd.Flags().GetString("format")
			format, err := config.ParseFormat(name)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().String("format", "yaml", "Output format: yaml or toml")
	return cmd
}
