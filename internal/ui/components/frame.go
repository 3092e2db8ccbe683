package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathctx/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered home sections so
// the boxes line up.
func ContentWidth(frameWidth int) int {
	// border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// CenterFrame centers content in a double border frame filling the area.
func CenterFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded border card of total width cw.
func Card(content string, cw int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	return style.Width(cw - 2).Render(content)
}
