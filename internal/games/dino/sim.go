package dino

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/dinodao/internal/config"
)

// ErrInvalidScript is returned when a script cannot be simulated.
var ErrInvalidScript = errors.New("dino: invalid script")

// Script describes a headless session. Frames run every Step milliseconds
// starting at Step, until Until or game over.
type Script struct {
	SessionID string
	Width     uint32
	Step      Timestamp
	Until     Timestamp

	// JumpAt lists times at which the jump input is pressed.
	JumpAt []Timestamp

	// AutoJumpAt, when positive, presses jump before any frame at which the
	// current obstacle has reached this percentage of its lifetime.
	AutoJumpAt float64
}

// Result is the outcome of a simulated session.
type Result struct {
	Events []Event `yaml:"events"`
	Final  Session `yaml:"final"`
	Frames int     `yaml:"frames"`
}

// Simulate runs a script on a ManualPump and returns everything the clock reported.
func Simulate(rules config.RulesConfig, s Script) (Result, error) {
	if !finite(s.Step) || !finite(s.Until) {
		return Result{}, fmt.Errorf("%w: step and until must be finite", ErrInvalidScript)
	}
	if s.Step <= 0 {
		return Result{}, fmt.Errorf("%w: step must be positive", ErrInvalidScript)
	}
	if s.Until < s.Step {
		return Result{}, fmt.Errorf("%w: until must be at least one step", ErrInvalidScript)
	}

	pump := NewManualPump(0)
	rec := &Recorder{Now: pump.Now}
	c := New(pump, rec, rules)

	if err := c.Validate(s.SessionID, s.Width); err != nil {
		return Result{}, err
	}
	c.Start(s.SessionID, s.Width)

	jumps := append([]Timestamp(nil), s.JumpAt...)
	sort.Slice(jumps, func(i, j int) bool { return jumps[i] < jumps[j] })
	next := 0

	for {
		frameAt := pump.Now() + s.Step
		if frameAt > s.Until {
			break
		}

		// Inputs land between frames, at their own timestamps
		for next < len(jumps) && jumps[next] <= frameAt {
			pump.Set(jumps[next])
			c.RecordJumpInput()
			next++
		}

		pump.Set(frameAt)
		if s.AutoJumpAt > 0 && c.Progress(frameAt) >= s.AutoJumpAt {
			c.RecordJumpInput()
		}
		pump.Step()

		if !c.Snapshot().Active {
			break
		}
	}

	return Result{
		Events: rec.Events,
		Final:  c.Snapshot(),
		Frames: pump.Frames(),
	}, nil
}

func finite(t Timestamp) bool {
	return !math.IsNaN(float64(t)) && !math.IsInf(float64(t), 0)
}
