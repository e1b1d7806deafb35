// Package tui runs the game as a full-screen bubbletea program.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/sokoban/game/engine"
	"github.com/wricardo/sokoban/game/session"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("172"))
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	gridStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	glyphStyles = map[string]lipgloss.Style{
		engine.PlayerGlyph: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		engine.BoxGlyph:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		engine.GoalGlyph:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		engine.EmptyGlyph:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
)

// Model is the bubbletea model wrapping a session
type Model struct {
	sess   *session.Session
	keys   keyMap
	help   help.Model
	status string
	ended  session.Event
}

// New creates a model over sess
func New(sess *session.Session) Model {
	return Model{
		sess: sess,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Ended returns the event that stopped the program, or "" if it is still running
func (m Model) Ended() session.Event {
	return m.ended
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Every key press is one turn; keys outside the
// command vocabulary are played as invalid no-op turns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.ended != "" {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Abort) {
			return m.apply(m.sess.Play(engine.Quit))
		}
		return m.apply(m.sess.PlayToken(m.token(msg)))
	}

	return m, nil
}

// token maps arrow keys onto the w/a/s/d vocabulary and passes everything else through
func (m Model) token(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return engine.Up.Token()
	case tea.KeyDown:
		return engine.Down.Token()
	case tea.KeyLeft:
		return engine.Left.Token()
	case tea.KeyRight:
		return engine.Right.Token()
	}
	return msg.String()
}

func (m Model) apply(outcome session.Outcome) (tea.Model, tea.Cmd) {
	switch outcome.Event {
	case session.EventQuit, session.EventGameComplete:
		m.ended = outcome.Event
		return m, tea.Quit
	case session.EventLevelCleared:
		m.status = fmt.Sprintf("Level %d cleared!", outcome.LevelNumber)
	default:
		m.status = ""
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.ended != "" {
		return ""
	}

	level := m.sess.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render(session.Banner))
	b.WriteString("\n")
	b.WriteString(legendStyle.Render(session.Legend))
	b.WriteString("\n")

	heading := fmt.Sprintf("Level %d/%d", m.sess.LevelNumber(), m.sess.LevelCount())
	if level.Name != "" {
		heading += " - " + level.Name
	}
	b.WriteString(heading)
	b.WriteString("\n")

	b.WriteString(gridStyle.Render(renderGrid(level)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderGrid draws the level with the same glyph priority as engine.Render
func renderGrid(level engine.Level) string {
	rows := make([]string, level.GridSize)
	for y := 0; y < level.GridSize; y++ {
		cells := make([]string, level.GridSize)
		for x := 0; x < level.GridSize; x++ {
			glyph := engine.GlyphAt(level, engine.Position{X: x, Y: y})
			cells[x] = glyphStyles[glyph].Render(glyph)
		}
		rows[y] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n")
}
