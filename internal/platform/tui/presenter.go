package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewSessionID returns a fresh 32-character session id.
// Hosts issue ids locally; nothing signs or verifies them.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Presenter is the clock's notifier for terminal hosts. It keeps the state the
// view needs and logs each notification.
type Presenter struct {
	logger *log.Logger

	SessionID string
	Obstacle  bool    // Whether an obstacle is on screen
	Jumping   bool    // Whether the player is airborne
	Score     uint32  // Last reported score
	Speed     float64 // Last reported speed
	Ended     bool    // Whether the session reached game over
	Cleared   int     // Obstacles cleared this session
	LastEvent string  // Short description of the latest notification
}

// NewPresenter creates a presenter logging to logger.
func NewPresenter(logger *log.Logger) *Presenter {
	return &Presenter{logger: logger}
}

// Reset prepares the presenter for a new session.
func (p *Presenter) Reset(sessionID string, speed float64) {
	*p = Presenter{
		logger:    p.logger,
		SessionID: sessionID,
		Speed:     speed,
		LastEvent: "go!",
	}
	p.logger.Info("session started", "session", sessionID)
}

// OnTrigger shows or clears the obstacle and counts cleared ones.
func (p *Presenter) OnTrigger(present bool) {
	p.Obstacle = present
	if present {
		p.LastEvent = "obstacle incoming"
	} else {
		p.Cleared++
		p.LastEvent = "obstacle cleared"
	}
	p.logger.Debug("trigger", "present", present)
}

// OnJump tracks whether the runner is in the air.
func (p *Presenter) OnJump(active bool) {
	p.Jumping = active
	p.logger.Debug("jump", "active", active)
}

// OnSpeedChange shows the new speed.
func (p *Presenter) OnSpeedChange(speed float64) {
	p.Speed = speed
	p.LastEvent = fmt.Sprintf("faster! speed %.1f", speed)
	p.logger.Debug("speed changed", "speed", speed)
}

// OnScoreChange shows the new score.
func (p *Presenter) OnScoreChange(score uint32) {
	p.Score = score
	p.logger.Debug("score changed", "score", score)
}

// OnGameEnd marks the session as over.
func (p *Presenter) OnGameEnd(sessionID string) {
	p.Ended = true
	p.Obstacle = false
	p.LastEvent = "caught on the ground"
	p.logger.Info("session ended",
		"session", sessionID,
		"score", p.Score,
		"speed", p.Speed,
		"cleared", p.Cleared,
	)
}
