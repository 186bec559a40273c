package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinodao/internal/config"
	"github.com/vovakirdan/dinodao/internal/games/dino"
)

// Model is the Bubble Tea model for one session clock.
// The clock, pump and presenter are shared by pointer across model copies.
type Model struct {
	clock    *dino.Clock
	pump     *TeaPump
	view     *Presenter
	cfg      config.Config
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	trackLen int
	startErr error
	quitting bool
}

// NewModel creates a model and starts its first session.
func NewModel(cfg config.Config, logger *log.Logger) Model {
	pump := NewTeaPump()
	view := NewPresenter(logger)

	m := Model{
		clock:    dino.New(pump, view, cfg.Rules),
		pump:     pump,
		view:     view,
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		logger:   logger,
		trackLen: cfg.Display.TrackLength,
	}
	m.startErr = m.restart()
	return m
}

// restart begins a new session with a fresh id.
func (m *Model) restart() error {
	id := NewSessionID()
	if err := m.clock.Validate(id, m.cfg.Session.Width); err != nil {
		m.logger.Error("cannot start session", "error", err)
		return fmt.Errorf("start session: %w", err)
	}
	m.view.Reset(id, config.InitialSpeed)
	m.clock.Start(id, m.cfg.Session.Width)
	m.keys.Restart.SetEnabled(false)
	return nil
}

// Err returns the error that prevented the session from starting, if any.
func (m Model) Err() error {
	return m.startErr
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.startErr != nil {
		return tea.Quit
	}
	return tickCmd(m.cfg.Display.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.trackLen = min(m.cfg.Display.TrackLength, msg.Width-4)
		if m.trackLen < 10 {
			m.trackLen = 10
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Jump):
		m.clock.RecordJumpInput()
	case key.Matches(msg, m.keys.Restart):
		if err := m.restart(); err != nil {
			m.startErr = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick runs one clock frame and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.pump.Frame()
	if m.view.Ended {
		m.keys.Restart.SetEnabled(true)
	}
	return m, tickCmd(m.cfg.Display.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	track := renderTrack(trackView{
		Length:   m.trackLen,
		Progress: m.clock.Progress(m.pump.Now()),
		Obstacle: m.view.Obstacle,
		Jumping:  m.view.Jumping,
		Ended:    m.view.Ended,
	}, m.cfg.Rules)

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("DINODAO"),
		renderHUD(m.view),
		"",
		track,
		"",
		renderStatus(m.view),
	)

	return frameStyle.Render(body) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a local session.
func Run(cfg config.Config, logger *log.Logger) error {
	model := NewModel(cfg, logger)
	if err := model.Err(); err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
