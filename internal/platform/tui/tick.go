// Package tui provides the Bubble Tea host for the session clock.
// It pumps frames, maps keys to jump input and draws the clock's notifications.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dinodao/internal/games/dino"
)

// TickMsg is sent to trigger a display frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TeaPump is a dino.FramePump fed by the Bubble Tea tick loop.
// The model calls Frame on every TickMsg; the pump runs whatever callback the
// clock registered for that frame.
type TeaPump struct {
	start   time.Time
	now     func() time.Time
	pending func()
}

// NewTeaPump creates a pump whose clock starts now.
func NewTeaPump() *TeaPump {
	return newTeaPumpWithClock(time.Now)
}

func newTeaPumpWithClock(now func() time.Time) *TeaPump {
	return &TeaPump{start: now(), now: now}
}

// ScheduleNextTick registers fn for the next frame.
func (p *TeaPump) ScheduleNextTick(fn func()) {
	p.pending = fn
}

// Now returns milliseconds since the pump was created.
// time.Time carries a monotonic reading, so Sub never goes backwards.
func (p *TeaPump) Now() dino.Timestamp {
	return dino.Timestamp(float64(p.now().Sub(p.start)) / float64(time.Millisecond))
}

// Frame runs the pending callback, if any.
func (p *TeaPump) Frame() {
	fn := p.pending
	if fn == nil {
		return
	}
	p.pending = nil
	fn()
}
