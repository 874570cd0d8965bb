package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bimmills/portal/config"
	"github.com/spf13/cobra"
)

var (
	configDir string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "BIM Mills order management and billing backend",
	Long: `portal serves the BIM Mills HTTP API: orders and their sales ledger,
invoices, vendor payables, the fabric catalogue and the admin dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return err
		}
		setupLogging(cfg.Logging)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding config.yaml and .env")
}

func setupLogging(lc config.LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if lc.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
