package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/nttmul/internal/format"
)

// HeaderModel renders the title bar and the session clock.
type HeaderModel struct {
	startTime time.Time
	version   string
	width     int
}

// NewHeaderModel starts the session clock.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "nttmul"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | ") +
		elapsedStyle.Render("Session: "+format.FormatExecutionDuration(time.Since(h.startTime).Truncate(time.Second)))

	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap))
}
