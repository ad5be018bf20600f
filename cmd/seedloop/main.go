package main

import (
	"fmt"
	"os"
	"time"

	"github.com/seedplanter/seedloop/internal/config"
	"github.com/seedplanter/seedloop/internal/guidance"
	"github.com/seedplanter/seedloop/internal/loop"
	"github.com/seedplanter/seedloop/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seedloop",
	Short: "Seedloop - issue outcome feedback loop",
	Long: `Seedloop records the lifecycle of automated issue-resolution attempts,
computes historical success rates per category, and derives weighted
guidance that biases future issue generation toward categories that
resolve successfully.`,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	configPath string
	dbPath     string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to outcome database (overrides config)")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(guidanceCmd)
}

// openLoop loads configuration and opens the outcome store. Callers must
// close the returned store.
func openLoop() (*loop.Loop, *store.Store, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open outcome store: %w", err)
	}

	opts := guidance.Options{
		MinSamples:           cfg.MinSamples,
		HighSuccessThreshold: cfg.HighSuccessThreshold,
		LowSuccessThreshold:  cfg.LowSuccessThreshold,
		FastResolveRatio:     cfg.FastResolveRatio,
	}
	return loop.New(s, opts), s, cfg, nil
}

// windowFromDays converts a --days flag to a query window, falling back to
// the configured default when the flag is unset.
func windowFromDays(days int, cfg *config.Config) time.Duration {
	if days <= 0 {
		days = cfg.WindowDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
