package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/nttmul/internal/ui"
)

// Styles of the dashboard, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle          lipgloss.Style
	focusedPanelStyle   lipgloss.Style
	headerStyle         lipgloss.Style
	titleStyle          lipgloss.Style
	versionStyle        lipgloss.Style
	elapsedStyle        lipgloss.Style
	labelStyle          lipgloss.Style
	valueStyle          lipgloss.Style
	engineStyle         lipgloss.Style
	selectedEngineStyle lipgloss.Style
	successStyle        lipgloss.Style
	errorStyle          lipgloss.Style
	promptStyle         lipgloss.Style
	barStyle            lipgloss.Style
	barEmptyStyle       lipgloss.Style
	statusRunningStyle  lipgloss.Style
	statusDoneStyle     lipgloss.Style
	statusErrorStyle    lipgloss.Style
	sparklineStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from the current ui theme. Run calls
// it again after the theme has been chosen.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(t.Accent)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	engineStyle = lipgloss.NewStyle().Foreground(t.Text)
	selectedEngineStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	promptStyle = lipgloss.NewStyle().Foreground(t.Accent)

	barStyle = lipgloss.NewStyle().Foreground(t.Accent)
	barEmptyStyle = lipgloss.NewStyle().Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	sparklineStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
