// Package config provides YAML-based configuration loading for the session
// clock rules and the terminal hosts that drive it.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate when the rules cannot drive a session.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for dinodao.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Rules   RulesConfig   `yaml:"rules"`
	Display DisplayConfig `yaml:"display"`
}

// Session contract constants. The matching rules keys exist so the effective
// configuration prints in full, but Validate rejects any other value.
const (
	SessionIDLength        = 32
	MinWidth        uint32 = 100
	InitialSpeed           = 5.0
	ScoreStep       uint32 = 10
)

// SessionConfig defines the parameters a host passes to Start.
type SessionConfig struct {
	Width uint32 `yaml:"width"` // Scale of obstacle and jump windows, in ms per unit speed
}

// RulesConfig defines the timing and scoring rules of the session clock.
type RulesConfig struct {
	MinWidth        uint32  `yaml:"min_width"`
	SessionIDLength int     `yaml:"session_id_length"`
	InitialSpeed    float64 `yaml:"initial_speed"`
	MinSpeed        float64 `yaml:"min_speed"`      // Exclusive floor: no decrement once speed <= MinSpeed
	SpeedStep       float64 `yaml:"speed_step"`     // Amount subtracted from speed at each speed-up
	SpeedUpEvery    uint32  `yaml:"speed_up_every"` // Score interval between speed-ups
	ScoreStep       uint32  `yaml:"score_step"`     // Points per cleared obstacle
	JumpFactor      float64 `yaml:"jump_factor"`    // Jump window = width * JumpFactor
	PunishStart     float64 `yaml:"punish_start"`   // Percent of obstacle lifetime
	PunishEnd       float64 `yaml:"punish_end"`
}

// DisplayConfig defines how terminal hosts pump and draw the session.
type DisplayConfig struct {
	TickRate    int `yaml:"tick_rate"`    // Frames per second
	TrackLength int `yaml:"track_length"` // Columns used to draw the obstacle track
}

// Validate reports whether the configuration can drive a session.
func (c Config) Validate() error {
	r := c.Rules
	switch {
	case r.SessionIDLength != SessionIDLength:
		return fmt.Errorf("%w: session_id_length is fixed at %d", ErrInvalidConfig, SessionIDLength)
	case r.MinWidth != MinWidth:
		return fmt.Errorf("%w: min_width is fixed at %d", ErrInvalidConfig, MinWidth)
	case r.InitialSpeed != InitialSpeed:
		return fmt.Errorf("%w: initial_speed is fixed at %g", ErrInvalidConfig, InitialSpeed)
	case r.ScoreStep != ScoreStep:
		return fmt.Errorf("%w: score_step is fixed at %d", ErrInvalidConfig, ScoreStep)
	case c.Session.Width < r.MinWidth:
		return fmt.Errorf("%w: session width %d is below min_width %d", ErrInvalidConfig, c.Session.Width, r.MinWidth)
	case r.MinSpeed <= 0 || r.InitialSpeed < r.MinSpeed:
		return fmt.Errorf("%w: speeds must satisfy 0 < min_speed <= initial_speed", ErrInvalidConfig)
	case r.SpeedStep <= 0:
		return fmt.Errorf("%w: speed_step must be positive", ErrInvalidConfig)
	case r.SpeedUpEvery == 0:
		return fmt.Errorf("%w: speed_up_every must be positive", ErrInvalidConfig)
	case r.JumpFactor <= 0:
		return fmt.Errorf("%w: jump_factor must be positive", ErrInvalidConfig)
	case r.PunishStart < 0 || r.PunishEnd > 100 || r.PunishStart > r.PunishEnd:
		return fmt.Errorf("%w: punish band [%g, %g] must lie within [0, 100]", ErrInvalidConfig, r.PunishStart, r.PunishEnd)
	case c.Display.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalidConfig)
	case c.Display.TrackLength < 10:
		return fmt.Errorf("%w: track_length must be at least 10", ErrInvalidConfig)
	}
	return nil
}
