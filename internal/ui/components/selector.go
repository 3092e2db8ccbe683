package components

import (
	"fmt"
	"slices"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathctx/internal/ui/theme"
)

// Selector is a labelled single choice cycled with left and right.
type Selector struct {
	Label   string
	Options []string
	Index   int
}

// NewSelector creates a selector with the first option chosen.
func NewSelector(label string, options []string) Selector {
	return Selector{Label: label, Options: options}
}

// Next selects the following option, wrapping around.
func (s *Selector) Next() {
	if len(s.Options) > 0 {
		s.Index = (s.Index + 1) % len(s.Options)
	}
}

// Prev selects the previous option, wrapping around.
func (s *Selector) Prev() {
	if len(s.Options) > 0 {
		s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
	}
}

// Value returns the chosen option, or "" when there are none.
func (s Selector) Value() string {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return ""
	}
	return s.Options[s.Index]
}

// Select chooses value if it is one of the options.
func (s *Selector) Select(value string) bool {
	i := slices.Index(s.Options, value)
	if i < 0 {
		return false
	}
	s.Index = i
	return true
}

// SetOptions replaces the options, keeping the current value when it is
// still available.
func (s *Selector) SetOptions(options []string) {
	current := s.Value()
	s.Options = options
	s.Index = 0
	s.Select(current)
}

// View renders "Label   ◂ value ▸", highlighted when focused.
func (s Selector) View(focused bool, labelWidth int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%-*s", labelWidth, s.Label))
	if focused {
		return theme.Selected.Render("▸ ") + label + theme.Selected.Render("◂ "+s.Value()+" ▸")
	}
	return "  " + label + theme.Unselected.Render("  "+s.Value())
}
