// Package cli implements the atcdel command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"atcdel/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// LoggerFunc installs the default slog logger for cfg
type LoggerFunc func(cfg *config.Config) error

// Options configure the root command
type Options struct {
	Version    string
	InitLogger LoggerFunc
}

type cfgKey struct{}

// Execute runs the root command
func Execute(ctx context.Context, opts Options) error {
	return newRootCommand(opts).ExecuteContext(ctx)
}

func newRootCommand(opts Options) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "atcdel",
		Short: "Clearance delivery rehearsal",
		Long: `atcdel builds realistic departure flight plans for an airport and lets you
practice issuing IFR and VFR clearances against the airport's departure rules.`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				os.Setenv(config.EnvPrefix+"_CONFIG_PATH", configPath)
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if opts.InitLogger != nil {
				if err := opts.InitLogger(cfg); err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
			}
			slog.SetDefault(slog.Default().With("session", uuid.NewString()))

			cmd.SetContext(context.WithValue(cmd.Context(), cfgKey{}, cfg))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file path")
	flags.String("aeroapi-token", "", "FlightAware AeroAPI token")
	flags.String("avwx-token", "", "AVWX token")
	flags.String("db", "", "departure cache database path")
	flags.String("rules", "", "departure rules file (YAML or JSON)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.String("log-file", "", "write logs to a rotated file instead of stderr")

	rootCmd.AddCommand(newRouteCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newClearanceCommand())
	rootCmd.AddCommand(newRulesCommand())

	return rootCmd
}

// configFrom returns the configuration loaded by the root command
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(cfgKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}
