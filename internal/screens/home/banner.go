package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathctx/internal/ui/theme"
)

const titleFull = `┌┬┐┌─┐┌┬┐┬ ┬┌─┐┌┬┐─┐ ┬
│││├─┤ │ ├─┤│   │ ┌┴┬┘
┴ ┴┴ ┴ ┴ ┴ ┴└─┘ ┴ ┴ └─`

const titleCompact = "m a t h c t x"

const tagline = "mean word problems, set in the real world"

// renderTitle returns the block title with the tagline, or a compact line.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		return center.Render(style.Render(titleCompact))
	}
	return center.Render(style.Render(titleFull) + "\n\n" + theme.Hint.Render(tagline))
}

// renderSummary shows catalog size and how many contexts back each variation.
func renderSummary(s summary, cw int, compact bool) string {
	count := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := theme.Dim

	head := fmt.Sprintf("%s %s   %s %s",
		count.Render(fmt.Sprint(s.contexts)), dim.Render("CONTEXTS"),
		count.Render(fmt.Sprint(s.categories)), dim.Render("CATEGORIES"))

	content := head
	if !compact {
		var lines []string
		for _, vc := range s.perVar {
			lines = append(lines, fmt.Sprintf("%-22s %s",
				dim.Render(vc.variation.DisplayName()),
				theme.Body.Render(fmt.Sprint(vc.contexts))))
		}
		content += "\n\n" + strings.Join(lines, "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

const buttonWidth = 24

// renderMenu draws menu items as fixed-width buttons, or plain lines when
// the terminal is short.
func renderMenu(items []string, selected, cw int, compact bool) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		var lines []string
		for i, label := range items {
			if i == selected {
				lines = append(lines, theme.Selected.Render("▸ "+label))
			} else {
				lines = append(lines, theme.Unselected.Render("  "+label))
			}
		}
		return center.Render(strings.Join(lines, "\n"))
	}

	button := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, button.
				Bold(true).
				Foreground(theme.BgDark).
				Background(theme.Primary).
				BorderForeground(theme.Primary).
				Render("▸ "+label))
			continue
		}
		buttons = append(buttons, button.
			Foreground(theme.Text).
			BorderForeground(theme.Border).
			Render(label))
	}
	return center.Render(strings.Join(buttons, "\n"))
}
