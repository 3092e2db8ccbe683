package contexts

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/router"
	"github.com/abhisek/mathctx/internal/screen"
	"github.com/abhisek/mathctx/internal/screens/studio"
	"github.com/abhisek/mathctx/internal/ui/layout"
	"github.com/abhisek/mathctx/internal/ui/theme"
	"github.com/abhisek/mathctx/internal/units"
)

// DetailScreen shows one context and its templates.
type DetailScreen struct {
	def    catalog.ContextDefinition
	engine studio.Engine
}

var (
	_ screen.Screen          = (*DetailScreen)(nil)
	_ screen.KeyHintProvider = (*DetailScreen)(nil)
)

func newDetail(def catalog.ContextDefinition, engine studio.Engine) *DetailScreen {
	return &DetailScreen{def: def, engine: engine}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.def.Name }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "g", Description: "Open in studio"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "g" && d.engine != nil {
		s := studio.New(d.engine, studio.WithContext(d.def.ID))
		return d, func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	return d, nil
}

func (d *DetailScreen) View(width, height int) string {
	def := d.def
	contentWidth := min(width-8, 90)
	rule := units.For(def.Unit)

	dim := theme.Dim
	val := theme.Body
	var b strings.Builder

	b.WriteString(theme.Title.Render("  " + def.Name))
	b.WriteString(dim.Render("  " + def.ID))
	b.WriteString("\n\n")
	if def.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(contentWidth).PaddingLeft(2).Foreground(theme.Text).Render(def.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(dim.Render("  Category:    ") + val.Render(def.Category) + "\n")
	b.WriteString(dim.Render("  Range:       ") + val.Render(fmt.Sprintf("%s to %s", rule.FormatValue(def.ValueMin), rule.FormatValue(def.ValueMax))) + "\n")
	b.WriteString(dim.Render("  Data label:  ") + val.Render(def.DataLabel) + "\n")

	names := make([]string, len(def.Variations))
	for i, v := range def.Variations {
		names[i] = v.DisplayName()
	}
	b.WriteString(dim.Render("  Variations:  ") + val.Render(strings.Join(names, ", ")) + "\n")

	for _, level := range catalog.AllLevels() {
		t, _ := def.Template(level)
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("  " + strings.ToUpper(string(level))))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(contentWidth).PaddingLeft(2).Foreground(theme.TextDim).Render(t))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
