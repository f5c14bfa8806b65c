// Package tui renders a breathing session in the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"respira/internal/core/session"
)

// Controls are the user verbs the screen triggers.
type Controls interface {
	Toggle()
	Reset()
}

// Options tune the session screen.
type Options struct {
	// ExitOnFinish quits the program once the session finishes.
	ExitOnFinish bool
	// Autostart starts the session as soon as the program runs.
	Autostart bool
}

// Model is the bubbletea model of the session screen.
type Model struct {
	controls Controls
	feed     *Feed
	options  Options
	keys     KeyMap
	help     help.Model
	progress progress.Model
	snapshot session.Snapshot
	width    int
	quitting bool
}

// startMsg asks the model to start the session.
type startMsg struct{}

// New creates the screen. Snapshots arrive through feed.
func New(controls Controls, feed *Feed, options Options) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		controls: controls,
		feed:     feed,
		options:  options,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: bar,
	}
}

// Snapshot returns the last snapshot the model rendered.
func (m Model) Snapshot() session.Snapshot {
	return m.snapshot
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.feed.Wait()}
	if m.options.Autostart {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = session.Snapshot(msg)
		if m.options.ExitOnFinish && m.snapshot.Session.Status == session.StatusFinished {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.feed.Wait()

	case feedClosedMsg:
		return m, nil

	case startMsg:
		m.controls.Toggle()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = clampWidth(msg.Width - 12)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.controls.Toggle()
		case key.Matches(msg, m.keys.Reset):
			m.controls.Reset()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snapshot := m.snapshot
	accent := phaseColor(snapshot.Phase)

	var body strings.Builder
	body.WriteString(TitleStyle.Render(snapshot.Config.Title()))
	body.WriteString("\n\n")
	body.WriteString(PhaseStyle.Foreground(accent).Render(phaseText(snapshot)))
	body.WriteString("\n")
	body.WriteString(CountStyle.Foreground(accent).Render(countText(snapshot)))
	body.WriteString("\n\n")
	body.WriteString(m.progress.ViewAs(snapshot.Progress()))
	body.WriteString("\n")
	body.WriteString(SessionStyle.Render(sessionText(snapshot)))

	frame := FrameStyle
	if snapshot.Session.Status == session.StatusPaused {
		frame = frame.BorderForeground(ColorPaused)
	}
	return lipgloss.JoinVertical(lipgloss.Center, frame.Render(body.String()), m.help.View(m.keys))
}

func phaseText(snapshot session.Snapshot) string {
	switch snapshot.Session.Status {
	case session.StatusPreparing:
		return "Get ready"
	case session.StatusRunning:
		return strings.ToUpper(snapshot.Phase.Label())
	case session.StatusPaused:
		return "Paused"
	case session.StatusFinished:
		return "Well done"
	default:
		return "Press space to begin"
	}
}

func countText(snapshot session.Snapshot) string {
	switch snapshot.Session.Status {
	case session.StatusPreparing:
		return fmt.Sprintf("%d", snapshot.Session.RemainingPreparationSeconds)
	case session.StatusRunning, session.StatusPaused:
		return fmt.Sprintf("%d", snapshot.RemainingPhaseSeconds)
	default:
		return " "
	}
}

func sessionText(snapshot session.Snapshot) string {
	switch snapshot.Session.Status {
	case session.StatusIdle:
		return "Session " + clock(snapshot.Session.TotalSeconds)
	case session.StatusPreparing:
		return fmt.Sprintf("Starting in %ds", snapshot.Session.RemainingPreparationSeconds)
	case session.StatusFinished:
		return "Session finished"
	default:
		return "Time left " + clock(snapshot.Session.RemainingSeconds)
	}
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func clampWidth(width int) int {
	if width < 10 {
		return 10
	}
	if width > 60 {
		return 60
	}
	return width
}
