package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dinodao/internal/games/dino"
	"github.com/vovakirdan/dinodao/internal/platform/tui"
)

var (
	flagSimWidth    uint32
	flagSimSession  string
	flagSimStep     float64
	flagSimUntil    float64
	flagSimJumpAt   []float64
	flagSimAutoJump float64
	flagSimFormat   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted session and print its events",
	Long: `Run a session on a manual frame pump, without a terminal, and print
every notification the clock produced.

Times are in milliseconds. Frames run every --step starting at --step.

Examples:
  dinodao simulate --until 5000
  dinodao simulate --jump-at 1500,4500 --until 10000
  dinodao simulate --auto-jump 50 --until 60000 --format yaml`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint32Var(&flagSimWidth, "width", 0, "Session width (0 = config value)")
	simulateCmd.Flags().StringVar(&flagSimSession, "session", "", "32-character session id (random if empty)")
	simulateCmd.Flags().Float64Var(&flagSimStep, "step", 1000.0/60, "Frame interval in ms")
	simulateCmd.Flags().Float64Var(&flagSimUntil, "until", 10000, "Stop after this many ms")
	simulateCmd.Flags().Float64SliceVar(&flagSimJumpAt, "jump-at", nil, "Times (ms) at which to press jump")
	simulateCmd.Flags().Float64Var(&flagSimAutoJump, "auto-jump", 0, "Jump whenever an obstacle reaches this percent (0 = off)")
	simulateCmd.Flags().StringVar(&flagSimFormat, "format", "table", "Output format: table or yaml")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	script := dino.Script{
		SessionID:  flagSimSession,
		Width:      cfg.Session.Width,
		Step:       dino.Timestamp(flagSimStep),
		Until:      dino.Timestamp(flagSimUntil),
		AutoJumpAt: flagSimAutoJump,
	}
	if script.SessionID == "" {
		script.SessionID = tui.NewSessionID()
	}
	if flagSimWidth != 0 {
		script.Width = flagSimWidth
	}
	for _, at := range flagSimJumpAt {
		script.JumpAt = append(script.JumpAt, dino.Timestamp(at))
	}

	res, err := dino.Simulate(cfg.Rules, script)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch flagSimFormat {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		return enc.Close()
	case "table":
		printSimulation(out, res)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or yaml)", flagSimFormat)
	}
}

func printSimulation(w io.Writer, res dino.Result) {
	fmt.Fprintf(w, "  %-10s  %-9s  %s\n", "Time (ms)", "Event", "Value")
	fmt.Fprintf(w, "  %-10s  %-9s  %s\n", "---------", "-----", "-----")
	for _, e := range res.Events {
		fmt.Fprintf(w, "  %-10.1f  %-9s  %s\n", float64(e.At), e.Kind, e.Detail())
	}

	fmt.Fprintln(w)
	status := "running"
	if !res.Final.Active {
		status = "game over"
	}
	fmt.Fprintf(w, "Frames: %d  Score: %d  Speed: %.1f  Status: %s\n",
		res.Frames, res.Final.Score, res.Final.Speed, status)
}
