package studio

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/ui/components"
	"github.com/abhisek/mathctx/internal/ui/theme"
)

const labelWidth = 12

func (s *StudioScreen) View(width, height int) string {
	cw := min(width-4, 96)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderForm())
	b.WriteString("\n")
	b.WriteString(components.Card(s.renderQuestion(cw-4), cw, false))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (s *StudioScreen) renderForm() string {
	lines := []string{
		s.variation.View(s.focus == fieldVariation, labelWidth),
		s.context.View(s.focus == fieldContext, labelWidth),
		s.level.View(s.focus == fieldLevel, labelWidth),
		s.renderDifficulty(),
		s.renderSeed(),
	}
	if desc := s.contextDescription(); desc != "" {
		lines = append(lines, "", theme.Hint.Render("  "+desc))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (s *StudioScreen) renderDifficulty() string {
	prefix := "  "
	if s.focus == fieldDifficulty {
		prefix = theme.Selected.Render("▸ ")
	}
	label := theme.Dim.Render(fmt.Sprintf("%-*s", labelWidth, "Difficulty"))
	meter := components.Meter{Value: s.difficulty, Max: problemgen.MaxDifficulty}
	return prefix + label + meter.View()
}

func (s *StudioScreen) renderSeed() string {
	prefix := "  "
	if s.focus == fieldSeed {
		prefix = theme.Selected.Render("▸ ")
	}
	return prefix + theme.Dim.Render(fmt.Sprintf("%-*s", labelWidth, "Seed")) + s.seed.View()
}

// contextDescription describes the selected context, or "" for random.
func (s *StudioScreen) contextDescription() string {
	id := s.context.Value()
	if id == RandomContext || id == "" {
		return ""
	}
	def, err := s.engine.Context(id)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s: %s (%s)", def.Name, def.Description, def.Category)
}

func (s *StudioScreen) renderQuestion(width int) string {
	if s.err != nil {
		return theme.ErrorText.Render("Generation failed") + "\n\n" +
			lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(s.err.Error())
	}
	if s.question == nil {
		msg := "Press Enter to generate a question."
		if s.generating {
			msg = "Generating..."
		}
		return theme.Hint.Render(msg)
	}

	q := s.question
	var b strings.Builder

	b.WriteString(theme.Heading.Render(q.Given.ContextName))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("  %s · %s · difficulty %d · %d marks",
		q.Given.Variation.DisplayName(), q.Given.Level, q.Difficulty, q.TotalMarks)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(q.Text))
	b.WriteString("\n\n")

	if s.showAnswer {
		b.WriteString(theme.Dim.Render("Answer: ") + theme.Answer.Render(q.Answer))
	} else {
		b.WriteString(theme.Hint.Render("Answer hidden (press a)"))
	}
	b.WriteString("\n")

	if s.showSteps && len(q.Steps) > 0 {
		b.WriteString("\n")
		stepStyle := lipgloss.NewStyle().Width(width - 4).Foreground(theme.TextDim)
		for i, step := range q.Steps {
			b.WriteString(fmt.Sprintf("%2d. ", i+1))
			b.WriteString(stepStyle.Render(step))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
