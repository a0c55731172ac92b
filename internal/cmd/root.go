package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"eventsctl/internal/config"
	"eventsctl/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "eventsctl",
	Short: "Administration client for the events platform",
	Long: `eventsctl is a terminal client for the events management platform.
It lets you browse and search events, inspect reference tables, and
administer the database and user accounts, subject to your account's role.

Most commands need a login first:
  eventsctl auth login --username alice --password secret

Privileged commands re-check your role against the server on every run,
so a role change takes effect without logging out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configureLogging sets the process-wide logger from the config file and
// flags. Flags win over the file; an unreadable file falls back to the
// built-in defaults.
func configureLogging(cmd *cobra.Command) {
	cfg := log.DefaultConfig()

	if fileCfg, err := config.Load(); err == nil {
		if fileCfg.LogLevel != "" {
			cfg.Level = log.ParseLevel(fileCfg.LogLevel)
		}
		if fileCfg.LogFormat != "" {
			cfg.Format = log.ParseFormat(fileCfg.LogFormat)
		}
	}

	if level, err := cmd.Flags().GetString("log-level"); err == nil && level != "" {
		cfg.Level = log.ParseLevel(level)
	}
	if format, err := cmd.Flags().GetString("log-format"); err == nil && format != "" {
		cfg.Format = log.ParseFormat(format)
	}
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		cfg.Level = log.LevelDebug
	}

	log.SetDefaultLogger(log.New(cfg))
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the events backend (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
