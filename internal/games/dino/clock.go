// Package dino implements the session clock of a jump-timing runner game.
//
// A frame pump advances the clock once per display refresh. On every frame the
// clock spawns and expires obstacles, ends jumps whose window has run out, and
// decides whether the player was caught on the ground while an obstacle passed.
// Each change is reported synchronously to a Notifier; rendering is left to the
// host.
package dino

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/dinodao/internal/config"
)

var (
	// ErrInvalidSessionID is returned when a session id has the wrong length.
	ErrInvalidSessionID = errors.New("dino: invalid session id")
	// ErrInvalidWidth is returned when the width is below the minimum.
	ErrInvalidWidth = errors.New("dino: invalid width")
)

// Timestamp is a point on the host's monotonic clock, in milliseconds.
type Timestamp float64

// mark is an optional timestamp. The zero value means "not set".
type mark struct {
	at  Timestamp
	set bool
}

// Session is a read-only copy of the clock's session state.
type Session struct {
	Active           bool
	SessionID        string
	Width            uint32
	TriggerStartedAt Timestamp // Valid only when HasTrigger is true
	HasTrigger       bool
	JumpStartedAt    Timestamp // Valid only when Jumping is true
	Jumping          bool
	Speed            float64
	Score            uint32
}

// Clock owns one session and advances it on every frame.
// It is not safe for concurrent use: the pump, Start and RecordJumpInput
// must all run on the same goroutine.
type Clock struct {
	pump    FramePump
	notify  Notifier
	rules   config.RulesConfig
	curve   config.SpeedCurve
	frame   func()
	looping bool // Whether a frame callback has been handed to the pump

	active    bool
	sessionID string
	width     uint32
	trigger   mark // When the current obstacle appeared
	jump      mark // When the current jump started
	speed     float64
	score     uint32
}

// New creates a clock driven by pump and reporting to notify.
// A nil notifier discards all notifications.
func New(pump FramePump, notify Notifier, rules config.RulesConfig) *Clock {
	if notify == nil {
		notify = nopNotifier{}
	}
	c := &Clock{
		pump:   pump,
		notify: notify,
		rules:  rules,
		curve:  config.NewSpeedCurve(rules),
		speed:  config.InitialSpeed,
	}
	c.frame = func() {
		c.Tick(c.pump.Now())
	}
	return c
}

// Validate checks the arguments Start would accept.
func (c *Clock) Validate(sessionID string, width uint32) error {
	if len(sessionID) != config.SessionIDLength {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidSessionID, len(sessionID), config.SessionIDLength)
	}
	if width < config.MinWidth {
		return fmt.Errorf("%w: %d is below %d", ErrInvalidWidth, width, config.MinWidth)
	}
	return nil
}

// Start replaces the session with a fresh one and makes sure the frame loop
// is running. It returns false, changing nothing, if the arguments are invalid.
func (c *Clock) Start(sessionID string, width uint32) bool {
	if c.Validate(sessionID, width) != nil {
		return false
	}

	c.active = true
	c.sessionID = sessionID
	c.width = width
	c.trigger = mark{}
	c.jump = mark{}
	c.speed = config.InitialSpeed
	c.score = 0

	// The loop re-arms itself after every frame, so one registration is enough
	// for the lifetime of the clock.
	if !c.looping {
		c.rearm()
	}
	return true
}

// RecordJumpInput starts a jump at the pump's current time.
// Presses while inactive or while a jump is in progress are ignored.
func (c *Clock) RecordJumpInput() {
	if !c.active || c.jump.set {
		return
	}
	c.jump = mark{at: c.pump.Now(), set: true}
	c.notify.OnJump(true)
}

// Tick advances the session to now. It always schedules the next frame, even
// when no session is active, so a later Start resumes ticking.
func (c *Clock) Tick(now Timestamp) {
	defer c.rearm()

	if !c.active {
		return
	}

	jumpWindow := Timestamp(float64(c.width) * c.rules.JumpFactor)
	triggerWindow := Timestamp(float64(c.width) * c.speed)

	// A new obstacle appears; nothing else is judged on its first frame.
	if !c.trigger.set {
		c.trigger = mark{at: now, set: true}
		c.notify.OnTrigger(true)
		return
	}

	// Caught on the ground inside the punish band.
	// NOTE: any started jump suppresses this check, including one started
	// long before the band. Confirm this is the intended rule.
	if !c.jump.set {
		progress := float64((now-c.trigger.at)/triggerWindow) * 100
		if progress >= c.rules.PunishStart && progress <= c.rules.PunishEnd {
			c.active = false
			c.trigger = mark{}
			c.notify.OnGameEnd(c.sessionID)
			return
		}
	}

	if c.jump.set && now-c.jump.at > jumpWindow {
		c.jump = mark{}
		c.notify.OnJump(false)
	}

	if now-c.trigger.at > triggerWindow {
		c.trigger = mark{}
		c.notify.OnTrigger(false)

		c.score += config.ScoreStep
		c.notify.OnScoreChange(c.score)

		if speed, ok := c.curve.Next(c.score, c.speed); ok {
			c.speed = speed
			c.notify.OnSpeedChange(c.speed)
		}
	}
}

// rearm hands the frame callback back to the pump.
func (c *Clock) rearm() {
	c.looping = true
	c.pump.ScheduleNextTick(c.frame)
}

// Snapshot returns a copy of the current session state.
func (c *Clock) Snapshot() Session {
	return Session{
		Active:           c.active,
		SessionID:        c.sessionID,
		Width:            c.width,
		TriggerStartedAt: c.trigger.at,
		HasTrigger:       c.trigger.set,
		JumpStartedAt:    c.jump.at,
		Jumping:          c.jump.set,
		Speed:            c.speed,
		Score:            c.score,
	}
}

// Progress returns how much of the current obstacle's lifetime has elapsed at
// now, in percent. It returns 0 when no obstacle is on screen.
func (c *Clock) Progress(now Timestamp) float64 {
	if !c.active || !c.trigger.set {
		return 0
	}
	window := float64(c.width) * c.speed
	return float64(now-c.trigger.at) / window * 100
}

// Rules returns the rules the clock was created with.
func (c *Clock) Rules() config.RulesConfig {
	return c.rules
}
