package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinodao/internal/platform/tui"
)

var flagWidth uint32

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session in this terminal",
	Long: `Start a session in the current terminal.

Controls:
  Space/Up/W - Jump
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

The width scales both windows: an obstacle stays on screen for
width * speed milliseconds and a jump lasts width milliseconds.

Examples:
  dinodao play
  dinodao play --width 300
  dinodao play --log-file dinodao.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Uint32Var(&flagWidth, "width", 0, "Session width, at least 100 (0 = config value)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagWidth != 0 {
		cfg.Session.Width = flagWidth
	}

	// Fit the track to the terminal
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if tw := w - 4; tw >= 10 && tw < cfg.Display.TrackLength {
			cfg.Display.TrackLength = tw
		}
	}

	// Logs would corrupt the alternate screen, so only keep them with --log-file
	logger, closeLog, err := newLogger("dinodao", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := tui.Run(cfg, logger); err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	return nil
}
