package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	infracfg "github.com/mcparena/arena-go/infrastructure/config"
)

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate a configuration file without running an agent.

Checks the file format, the strategy name, the memory backend, and the
iteration bounds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := infracfg.NewLoader().LoadFile(configPath)
			if err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}

			name := cfg.Name
			if name == "" {
				name = "(unnamed)"
			}
			_, _ = fmt.Fprintf(a.stdout, "Configuration is valid.\n")
			_, _ = fmt.Fprintf(a.stdout, "  Name: %s\n", name)
			_, _ = fmt.Fprintf(a.stdout, "  Strategy: %s\n", cfg.Strategy)
			_, _ = fmt.Fprintf(a.stdout, "  Memory backend: %s\n", cfg.Memory.Backend)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
