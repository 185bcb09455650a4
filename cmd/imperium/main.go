// imperium is a turn-based grand strategy simulation played from the
// terminal.
//
// Usage:
//
//	imperium play               - Start or resume an interactive session
//	imperium simulate           - Run a headless simulation for N turns
//	imperium saves list         - List save slots
//	imperium saves delete <id>  - Delete a save slot
//
// Global flags:
//
//	--config <path>  - Path to a tunables config file
//	--db <path>      - Path to the save-slot database
//	--log-level <l>  - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"imperium/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "imperium",
	Short: "Imperium - turn-based grand strategy in your terminal",
	Long: `Imperium is a deterministic turn-based strategy simulation. Pick a
nation, spend your three actions a turn, and outlast five rivals.

Available commands:
  play      - Interactive session
  simulate  - Headless seeded simulation
  saves     - Manage save slots

Examples:
  imperium play --nation rome
  imperium simulate --seed 512 --turns 40
  imperium saves list`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tunables config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "imperium.db", "Path to save-slot database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(savesCmd)
}

func setupLogging() {
	var logLevel zerolog.Level
	switch flagLogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}

// loadTunables resolves the tunables from the --config flag, falling back
// to built-in defaults when no file is given.
func loadTunables() (*config.Tunables, error) {
	tun, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := tun.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return tun, nil
}
