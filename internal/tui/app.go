// Package tui implements the interactive dashboard on top of a playback
// session. All state lives in the bubbletea model; the session is only
// touched from commands and the poll tick.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmaehler/airband/internal/core"
	"github.com/tmaehler/airband/internal/session"
	"github.com/tmaehler/airband/internal/tui/styles"
)

const flashDuration = 3 * time.Second

// Model is the main TUI model
type Model struct {
	sess        *session.Session
	refreshRate time.Duration

	width  int
	height int

	// State
	playlist core.Playlist
	matches  []session.Match
	cursor   int
	snapshot core.Snapshot

	// Search state
	searching   bool
	searchInput textinput.Model
	filter      string

	// Overlays
	showHelp bool

	// Transient status line
	flash       string
	flashExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(sess *session.Session, refreshRate time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter stations..."
	ti.CharLimit = 100
	ti.Width = 40

	m := Model{
		sess:        sess,
		refreshRate: refreshRate,
		searchInput: ti,
	}
	m.reload()
	return m
}

// reload refreshes the playlist view and the filtered matches.
func (m *Model) reload() {
	m.playlist = m.sess.CurrentPlaylist()
	m.matches = m.sess.Search(m.filter)
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Messages
type tickMsg time.Time
type playedMsg struct {
	station core.Station
	err     error
}
type stoppedMsg struct{ err error }
type copiedMsg struct{ err error }

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) playSelected() tea.Cmd {
	if m.cursor >= len(m.matches) {
		return nil
	}
	index := m.matches[m.cursor].Index
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		st, err := m.sess.PlayIndex(ctx, index)
		return playedMsg{station: st, err: err}
	}
}

func (m Model) stopPlayback() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return stoppedMsg{err: m.sess.Stop(ctx)}
	}
}

func (m Model) copySelected() tea.Cmd {
	if m.cursor >= len(m.matches) {
		return nil
	}
	url := m.matches[m.cursor].Station.URL
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(url)}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snapshot = m.sess.Status()
		m.reload()
		if time.Now().After(m.flashExpiry) {
			m.flash = ""
		}
		return m, m.tick()

	case playedMsg:
		if msg.err != nil {
			m.setFlash(styles.Failed.Render(fmt.Sprintf("play failed: %v", msg.err)))
		} else {
			m.setFlash(fmt.Sprintf("▶ %s", msg.station.Name))
		}
		m.snapshot = m.sess.Status()
		return m, nil

	case stoppedMsg:
		if msg.err != nil {
			m.setFlash(styles.Failed.Render(fmt.Sprintf("stop failed: %v", msg.err)))
		} else {
			m.setFlash("■ stopped")
		}
		m.snapshot = m.sess.Status()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setFlash(styles.Failed.Render(fmt.Sprintf("copy failed: %v", msg.err)))
		} else {
			m.setFlash("URL copied to clipboard")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) setFlash(s string) {
	m.flash = s
	m.flashExpiry = time.Now().Add(flashDuration)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input grabs most keys while active.
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.filter = ""
			m.searchInput.SetValue("")
			m.reload()
			return m, nil
		case "enter":
			m.searching = false
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.filter = m.searchInput.Value()
			m.reload()
			return m, cmd
		}
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m, m.playSelected()

	case "s":
		return m, m.stopPlayback()

	case "y":
		return m, m.copySelected()

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "tab":
		m.cyclePlaylist()
		return m, nil
	}

	return m, nil
}

// cyclePlaylist switches to the next playlist in name order.
func (m *Model) cyclePlaylist() {
	names := m.sess.Library().PlaylistNames()
	if len(names) < 2 {
		return
	}
	active := m.playlist.Name
	next := names[0]
	for i, name := range names {
		if name == active {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := m.sess.SwitchPlaylist(next); err != nil {
		m.setFlash(styles.Failed.Render(fmt.Sprintf("switch failed: %v", err)))
		return
	}
	m.cursor = 0
	m.reload()
	m.setFlash(fmt.Sprintf("playlist: %s", next))
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("✈ airband — %s", m.playlist.Name)))
	b.WriteString("\n\n")

	if m.searching || m.filter != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	// The list panel loses its highlight while the filter input has focus.
	b.WriteString(styles.Panel(!m.searching).Render(strings.TrimRight(m.renderStations(), "\n")))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderStations() string {
	if len(m.matches) == 0 {
		if m.filter != "" {
			return styles.Muted.Render("No stations match the filter")
		}
		return styles.Muted.Render("Playlist is empty. Add stations with 'airband station add'.")
	}

	maxRows := m.height - 8
	if maxRows < 1 {
		maxRows = len(m.matches)
	}

	var b strings.Builder
	for i, match := range m.matches {
		if i >= maxRows {
			b.WriteString(styles.Dim.Render(fmt.Sprintf("  … %d more", len(m.matches)-maxRows)))
			b.WriteString("\n")
			break
		}

		line := fmt.Sprintf("%2d  %s", match.Index, match.Station.Name)
		if m.snapshot.HasStation() && m.snapshot.Station.URL == match.Station.URL && m.snapshot.State.Active() {
			line = "♪ " + line
		} else {
			line = "  " + line
		}

		if i == m.cursor {
			b.WriteString(styles.Highlight.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	state := m.snapshot.State.String()
	parts = append(parts, styles.StateIcon(state)+" "+state)
	if m.snapshot.HasStation() {
		parts = append(parts, m.snapshot.Station.Name)
	}
	if m.snapshot.State == core.StateFailed && m.snapshot.Reason != "" {
		parts = append(parts, styles.Failed.Render(m.snapshot.Reason))
	}
	if m.flash != "" {
		parts = append(parts, styles.Subtitle.Render(m.flash))
	}

	bar := strings.Join(parts, styles.Dim.Render("  │  "))
	hint := styles.Dim.Render("enter play · s stop · / search · y copy · tab playlist · ? help · q quit")
	return bar + "\n" + hint
}

func (m Model) renderHelp() string {
	help := `Keyboard shortcuts

  ↑/k, ↓/j     Move selection
  Enter        Play selected station
  s            Stop playback
  /            Filter stations (Esc clears)
  y            Copy station URL to clipboard
  Tab          Switch to next playlist
  ?            Toggle this help
  q, Ctrl+C    Quit (stops playback)

Press any key to close`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Padding(1, 3).Render(help))
}

// Run starts the TUI application over an existing session.
func Run(sess *session.Session, refreshRate time.Duration) error {
	model := NewModel(sess, refreshRate)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
