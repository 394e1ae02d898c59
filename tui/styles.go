package tui

import "github.com/charmbracelet/lipgloss"

// 青绿为主色，琥珀色标出数字和路径
var (
	accent = lipgloss.AdaptiveColor{Light: "30", Dark: "43"}
	muted  = lipgloss.AdaptiveColor{Light: "245", Dark: "243"}
	warm   = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}

	headerStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Underline(true)

	doneHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().
			Foreground(muted)

	sectionStyle = lipgloss.NewStyle().
			Foreground(accent)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(accent).
			PaddingLeft(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(warm).
			Bold(true)

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 2)

	currentFileStyle = lipgloss.NewStyle().
				Foreground(warm).
				MaxHeight(1)

	reportStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)
)
