package dino

// FramePump is the host's frame scheduler.
type FramePump interface {
	// ScheduleNextTick registers fn to run once on the next frame.
	// A later registration replaces an earlier one that has not run yet.
	ScheduleNextTick(fn func())
	// Now returns the current time. Successive calls never go backwards.
	Now() Timestamp
}

// ManualPump is a FramePump whose time and frames are advanced by hand.
// Tests and headless simulations use it in place of a display-refresh source.
type ManualPump struct {
	now     Timestamp
	pending func()
	frames  int
}

// NewManualPump creates a pump whose clock starts at start.
func NewManualPump(start Timestamp) *ManualPump {
	return &ManualPump{now: start}
}

// ScheduleNextTick stores fn until the next Step.
func (p *ManualPump) ScheduleNextTick(fn func()) {
	p.pending = fn
}

// Now returns the pump's current time.
func (p *ManualPump) Now() Timestamp {
	return p.now
}

// Set moves the clock to t. Times earlier than the current one are ignored.
func (p *ManualPump) Set(t Timestamp) {
	if t > p.now {
		p.now = t
	}
}

// Pending reports whether a frame callback is waiting to run.
func (p *ManualPump) Pending() bool {
	return p.pending != nil
}

// Frames returns how many frames have run.
func (p *ManualPump) Frames() int {
	return p.frames
}

// Step runs the pending frame callback at the current time.
// Returns false if nothing was scheduled.
func (p *ManualPump) Step() bool {
	fn := p.pending
	if fn == nil {
		return false
	}
	p.pending = nil
	p.frames++
	fn()
	return true
}

// Advance moves the clock forward by d and runs one frame.
func (p *ManualPump) Advance(d Timestamp) bool {
	p.Set(p.now + d)
	return p.Step()
}
