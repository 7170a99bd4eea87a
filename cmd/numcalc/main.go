// Package main is the entry point for the numcalc command.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lemonberrylabs/numcalc/pkg/config"
	"github.com/lemonberrylabs/numcalc/pkg/logging"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "numcalc",
		Short: "Two-operand calculator for Arabic and Roman numerals",
		Long: "numcalc evaluates expressions such as \"IV * II\" or \"10 / 3\".\n" +
			"Operands must be 1..10 and use one numeral system; results are\n" +
			"printed in the same system. Without a subcommand it reads one\n" +
			"expression per line from standard input.",
		SilenceUsage: true,
		RunE:         runREPL,
	}

	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("numcalc version {{.Version}}\n")

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (env NUMCALC_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")

	rootCmd.AddCommand(newEvalCmd(), newBatchCmd(), newServeCmd())
	return rootCmd
}

// setup loads configuration and builds the logger. Flags take precedence
// over the environment and the config file.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	path := os.Getenv("NUMCALC_CONFIG")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if cmd.Flags().Lookup("port") != nil {
		if v, _ := cmd.Flags().GetInt("port"); v != 0 {
			cfg.Port = v
		}
		if v, _ := cmd.Flags().GetInt("grpc-port"); v != 0 {
			cfg.GRPCPort = v
		}
		if v, _ := cmd.Flags().GetString("host"); v != "" {
			cfg.Host = v
		}
	}
	if cmd.Flags().Lookup("history-limit") != nil {
		if v, _ := cmd.Flags().GetInt("history-limit"); v != 0 {
			cfg.HistoryLimit = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
