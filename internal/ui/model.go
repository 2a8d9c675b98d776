package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/bomber-arena/internal/game"
	"github.com/amalg/bomber-arena/internal/session"
)

// Terminals report presses but never releases. A held direction is treated
// as released once no repeat has arrived for a while; the first hold is
// longer to cover the keyboard's autorepeat delay.
const (
	firstHold  = 550 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

// snapshotMsg carries a new model from the session.
type snapshotMsg game.Model

// releaseMsg fires when a held key's hold window may have run out.
type releaseMsg struct {
	key game.Key
	gen int
}

// Model is the Bubbletea model for a local match.
type Model struct {
	session  *session.Session
	fps      int
	snap     *game.Model
	held     map[game.Key]int // Key -> generation of its latest press
	gen      int
	quitting bool
}

// NewModel creates a TUI model bound to a running session.
func NewModel(s *session.Session, fps int) Model {
	return Model{
		session: s,
		fps:     fps,
		held:    make(map[game.Key]int),
	}
}

// Init starts listening for snapshots from the session.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.session)
}

// Update handles key presses, synthetic releases and new snapshots.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case releaseMsg:
		if gen, ok := m.held[msg.key]; ok && gen == msg.gen {
			delete(m.held, msg.key)
			m.session.Dispatch(game.KeyUpMsg{Key: msg.key})
		}
		return m, nil

	case snapshotMsg:
		snap := game.Model(msg)
		m.snap = &snap
		return m, waitForSnapshot(m.session)
	}

	return m, nil
}

// View renders the latest snapshot.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if m.snap == nil {
		return "Waiting for game state...\n"
	}

	board := RenderBoard(*m.snap)
	hud := RenderHUD(*m.snap, m.fps)
	view := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", hud)
	if m.snap.Debug {
		view = lipgloss.JoinVertical(lipgloss.Left, view, RenderDebug(*m.snap))
	}
	return view + "\n"
}

// handleKey forwards a press to the session and arms its release.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	key, ok := keyFor(msg)
	if !ok {
		return m, nil
	}

	if !isDirection(key) {
		m.session.Dispatch(game.KeyDownMsg{Key: key})
		m.session.Dispatch(game.KeyUpMsg{Key: key})
		return m, nil
	}

	hold := repeatHold
	if _, held := m.held[key]; !held {
		hold = firstHold
		m.session.Dispatch(game.KeyDownMsg{Key: key})
	}
	m.gen++
	m.held[key] = m.gen
	gen := m.gen
	return m, tea.Tick(hold, func(time.Time) tea.Msg {
		return releaseMsg{key: key, gen: gen}
	})
}

// keyFor maps a terminal key to the game's key names.
func keyFor(msg tea.KeyMsg) (game.Key, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return game.KeyArrowUp, true
	case tea.KeyDown:
		return game.KeyArrowDown, true
	case tea.KeyLeft:
		return game.KeyArrowLeft, true
	case tea.KeyRight:
		return game.KeyArrowRight, true
	case tea.KeySpace:
		return game.KeySpace, true
	case tea.KeyEsc:
		return game.KeyEscape, true
	case tea.KeyRunes:
		switch s := string(msg.Runes); s {
		case "w", "a", "s", "d", "x", "r", "R":
			return game.Key(s), true
		}
	}
	return "", false
}

func isDirection(k game.Key) bool {
	for _, id := range []int{1, 2} {
		c := game.ControlsFor(id)
		if k == c.Up || k == c.Down || k == c.Left || k == c.Right {
			return true
		}
	}
	return false
}

// waitForSnapshot returns a Cmd that waits for the next session update.
func waitForSnapshot(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-s.Updates())
	}
}
