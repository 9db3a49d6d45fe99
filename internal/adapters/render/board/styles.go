package board

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	ruleset  lipgloss.Style
	beatmap  lipgloss.Style
	diff     lipgloss.Style
	player   lipgloss.Style
	country  lipgloss.Style
	mods     lipgloss.Style
	times    lipgloss.Style
	failed   lipgloss.Style
	score    lipgloss.Style
	gold     lipgloss.Style
	silver   lipgloss.Style
	bronze   lipgloss.Style
	rank     lipgloss.Style
	warning  lipgloss.Style
	empty    lipgloss.Style
	section  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ruleset: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")),
		beatmap: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		diff:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		player:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		country: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		mods:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		times:   lipgloss.NewStyle().Faint(true),
		failed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		score:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		gold:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		silver:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		bronze:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		rank:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:   lipgloss.NewStyle().Faint(true),
		section: lipgloss.NewStyle().MarginTop(1),
	}
}
