package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinodao/internal/config"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ObstacleChar = '▓'
	CrashChar    = '✗'
	GroundChar   = '═'
	BandChar     = '▔'
)

// cellKind selects the style of a track cell.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellPlayer
	cellObstacle
	cellCrash
	cellGround
	cellBand
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellEmpty:    lipgloss.NewStyle(),
	cellPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	cellObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	cellCrash:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	cellGround:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	cellBand:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	overStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

type cell struct {
	r    rune
	kind cellKind
}

// trackView is what the track renderer needs from a frame.
type trackView struct {
	Length   int     // Columns
	Progress float64 // Obstacle lifetime elapsed, percent
	Obstacle bool
	Jumping  bool
	Ended    bool
}

// column maps a lifetime percentage to a track column. Obstacles enter on the
// right at 0% and leave on the left at 100%.
func column(length int, percent float64) int {
	col := int(float64(length-1) * (1 - percent/100))
	if col < 0 {
		return 0
	}
	if col > length-1 {
		return length - 1
	}
	return col
}

// trackCells lays out the air row, the running row and the ground row.
// The player stands where the obstacle is in the middle of the punish band.
func trackCells(v trackView, rules config.RulesConfig) [3][]cell {
	var rows [3][]cell
	for i := range rows {
		rows[i] = make([]cell, v.Length)
		for x := range rows[i] {
			rows[i][x] = cell{r: ' ', kind: cellEmpty}
		}
	}

	bandFrom := column(v.Length, rules.PunishEnd)
	bandTo := column(v.Length, rules.PunishStart)
	for x := range rows[2] {
		rows[2][x] = cell{r: GroundChar, kind: cellGround}
		if x >= bandFrom && x <= bandTo {
			rows[2][x] = cell{r: BandChar, kind: cellBand}
		}
	}

	playerCol := column(v.Length, (rules.PunishStart+rules.PunishEnd)/2)
	switch {
	case v.Ended:
		rows[1][playerCol] = cell{r: CrashChar, kind: cellCrash}
	case v.Jumping:
		rows[0][playerCol] = cell{r: PlayerChar, kind: cellPlayer}
	default:
		rows[1][playerCol] = cell{r: PlayerChar, kind: cellPlayer}
	}

	if v.Obstacle && !v.Ended {
		x := column(v.Length, v.Progress)
		if rows[1][x].kind == cellEmpty {
			rows[1][x] = cell{r: ObstacleChar, kind: cellObstacle}
		}
	}

	return rows
}

// renderRow converts cells to a styled string.
// Adjacent cells with the same style are grouped to minimize ANSI escape sequences.
func renderRow(cells []cell) string {
	var sb strings.Builder
	x := 0
	for x < len(cells) {
		kind := cells[x].kind
		var run strings.Builder
		for x < len(cells) && cells[x].kind == kind {
			run.WriteRune(cells[x].r)
			x++
		}
		sb.WriteString(cellStyles[kind].Render(run.String()))
	}
	return sb.String()
}

// renderTrack draws the three track rows.
func renderTrack(v trackView, rules config.RulesConfig) string {
	rows := trackCells(v, rules)
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = renderRow(r)
	}
	return strings.Join(lines, "\n")
}

// renderHUD draws the score line.
func renderHUD(p *Presenter) string {
	id := p.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	return hudStyle.Render(fmt.Sprintf("score %-6d speed %.1f  session %s", p.Score, p.Speed, id))
}

// renderStatus draws the line under the track.
func renderStatus(p *Presenter) string {
	if p.Ended {
		return overStyle.Render(fmt.Sprintf("GAME OVER - %s. Final score: %d", p.LastEvent, p.Score))
	}
	return hudStyle.Render(p.LastEvent)
}
