package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathctx/internal/ui/theme"
)

// Meter shows a small integer on a fixed scale, e.g. difficulty 3 of 5.
type Meter struct {
	Value int
	Max   int
}

// View renders filled and empty blocks followed by "value/max".
func (m Meter) View() string {
	filled := min(max(m.Value, 0), m.Max)
	return theme.MeterFilled.Render(strings.Repeat("■", filled)) +
		theme.MeterEmpty.Render(strings.Repeat("■", m.Max-filled)) +
		theme.Dim.Render(fmt.Sprintf(" %d/%d", m.Value, m.Max))
}
