// dinodao is a terminal jump-timing game built around a tick-driven session clock.
//
// Usage:
//
//	dinodao play             - Play a session in this terminal
//	dinodao serve            - Start SSH server for remote play
//	dinodao simulate         - Run a scripted session without a terminal
//	dinodao rules            - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Path to a YAML config (default: search order)
//	--fps <rate>         - Override the tick rate
//	--log-level <level>  - debug, info, warn, error (default: info)
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinodao/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinodao",
	Short: "dinodao - jump the obstacles at the right moment",
	Long: `dinodao is a reflex-timing game: obstacles run towards you and you
must be in the air while they pass. Every cleared obstacle scores 10 points
and every 50 points the obstacles get faster.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Run a scripted session and print its events
  rules     - Print the effective configuration

Examples:
  dinodao play
  dinodao play --width 400
  dinodao serve --ssh :2222
  dinodao simulate --jump-at 1500,4500 --until 10000`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(rulesCmd)
}

// loadConfig loads the config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Display.TickRate = flagFPS
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
