package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary     = lipgloss.Color("#101F38")
	colorAccent      = lipgloss.Color("#8BC34A")
	colorMuted       = lipgloss.Color("#8a94a6")
	colorBorder      = lipgloss.Color("#dce0e5")
	colorDestructive = lipgloss.Color("#e53935")
	colorLight       = lipgloss.Color("#ffffff")
)

type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Value   lipgloss.Style
	Card    lipgloss.Style
	Name    lipgloss.Style
	Brand   lipgloss.Style
	Price   lipgloss.Style
	Detail  lipgloss.Style
	Alert   lipgloss.Style
	Help    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLight).
			Background(colorPrimary).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(colorMuted),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Value:   lipgloss.NewStyle(),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Name: lipgloss.NewStyle().Bold(true),
		Brand: lipgloss.NewStyle().
			Foreground(colorLight).
			Background(colorPrimary).
			Padding(0, 1),
		Price: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Background(colorAccent).
			Padding(0, 1),
		Detail: lipgloss.NewStyle().Foreground(colorMuted),
		Alert: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLight).
			Background(colorDestructive).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
