package tui

import (
	"github.com/charmbracelet/lipgloss"

	"respira/internal/core/model"
)

var (
	ColorFgPrimary = lipgloss.Color("#D8E6E3")
	ColorFgMuted   = lipgloss.Color("#7A8C8A")
	ColorInhale    = lipgloss.Color("#56B6C2")
	ColorExhale    = lipgloss.Color("#98C379")
	ColorHold      = lipgloss.Color("#E5C07B")
	ColorPaused    = lipgloss.Color("#D19A66")
	ColorBorder    = lipgloss.Color("#3F4451")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Bold(true)

	PhaseStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true).
			Padding(0, 2)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	SessionStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	FrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// phaseColor picks the accent for phase.
func phaseColor(phase model.Phase) lipgloss.Color {
	switch phase {
	case model.PhaseInhale:
		return ColorInhale
	case model.PhaseExhale:
		return ColorExhale
	case model.PhaseHoldAfterInhale, model.PhaseHoldAfterExhale:
		return ColorHold
	default:
		return ColorFgPrimary
	}
}
