// Package contexts is the catalog browser: contexts grouped by category,
// with a detail view showing the three narrative templates.
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
)

type rowKind int

const (
	rowCategory rowKind = iota
	rowContext
)

type row struct {
	kind     rowKind
	category string
	def      *catalog.ContextDefinition
}

// BrowserScreen lists the catalog by category.
type BrowserScreen struct {
	engine       studio.Engine
	rows         []row
	cursor       int
	scrollOffset int
}

var (
	_ screen.Screen          = (*BrowserScreen)(nil)
	_ screen.KeyHintProvider = (*BrowserScreen)(nil)
)

// New creates a browser over cat. engine backs the studio opened from a
// context's detail view.
func New(cat *catalog.Catalog, engine studio.Engine) *BrowserScreen {
	var rows []row
	for _, category := range cat.Categories() {
		rows = append(rows, row{kind: rowCategory, category: category})
		defs := cat.ByCategory(category)
		for i := range defs {
			rows = append(rows, row{kind: rowContext, category: category, def: &defs[i]})
		}
	}

	b := &BrowserScreen{engine: engine, rows: rows}
	b.moveCursor(1)
	return b
}

func (b *BrowserScreen) Init() tea.Cmd {
	return nil
}

func (b *BrowserScreen) Title() string {
	return "Contexts"
}

func (b *BrowserScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Category"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (b *BrowserScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			b.moveCursor(-1)
		case "down", "j":
			b.moveCursor(1)
		case "tab":
			b.jumpCategory(1)
		case "shift+tab":
			b.jumpCategory(-1)
		case "enter":
			return b, b.open()
		case "q":
			return b, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return b, nil
}

// Selected returns the context under the cursor.
func (b *BrowserScreen) Selected() (catalog.ContextDefinition, bool) {
	if b.cursor < 0 || b.cursor >= len(b.rows) || b.rows[b.cursor].kind != rowContext {
		return catalog.ContextDefinition{}, false
	}
	return *b.rows[b.cursor].def, true
}

// moveCursor moves by delta, skipping category headers. When started on a
// header (including before the first row) it lands on the nearest context.
func (b *BrowserScreen) moveCursor(delta int) {
	if len(b.rows) == 0 {
		return
	}
	next := b.cursor + delta
	if b.rows[b.cursor].kind == rowCategory && delta > 0 {
		next = b.cursor
	}
	for next >= 0 && next < len(b.rows) {
		if b.rows[next].kind == rowContext {
			b.cursor = next
			return
		}
		next += delta
	}
}

// jumpCategory moves to the first context of the next or previous category.
func (b *BrowserScreen) jumpCategory(dir int) {
	if len(b.rows) == 0 {
		return
	}
	current := b.rows[b.cursor].category
	var target string
	for i := b.cursor + dir; i >= 0 && i < len(b.rows); i += dir {
		if b.rows[i].kind == rowCategory && b.rows[i].category != current {
			target = b.rows[i].category
			break
		}
	}
	if target == "" {
		return
	}
	for i, r := range b.rows {
		if r.kind == rowContext && r.category == target {
			b.cursor = i
			return
		}
	}
}

func (b *BrowserScreen) open() tea.Cmd {
	def, ok := b.Selected()
	if !ok {
		return nil
	}
	detail := newDetail(def, b.engine)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// adjustScroll keeps the cursor and its category header in view.
func (b *BrowserScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := b.cursor
	for top > 0 && b.rows[top-1].kind == rowCategory {
		top--
	}
	if top < b.scrollOffset {
		b.scrollOffset = top
	}
	if b.cursor >= b.scrollOffset+height {
		b.scrollOffset = b.cursor - height + 1
	}
}

func (b *BrowserScreen) View(width, height int) string {
	if len(b.rows) == 0 {
		return theme.Hint.Render("  The catalog is empty.")
	}
	b.adjustScroll(height)

	var lines []string
	for i := b.scrollOffset; i < len(b.rows) && len(lines) < height; i++ {
		r := b.rows[i]
		if r.kind == rowCategory {
			lines = append(lines, theme.Heading.PaddingLeft(2).Render(strings.ToUpper(r.category)))
			continue
		}
		lines = append(lines, renderContextRow(*r.def, i == b.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func renderContextRow(d catalog.ContextDefinition, selected bool, width int) string {
	nameWidth := max(width-52, 16)
	name := d.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	cursor := "  "
	nameStyle := theme.Unselected
	if selected {
		cursor = "▸ "
		nameStyle = theme.Selected
	}

	badges := make([]string, 0, len(catalog.AllVariations()))
	for _, v := range catalog.AllVariations() {
		mark := "·"
		style := theme.Dim
		if d.Supports(v) {
			mark = variationBadge(v)
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		badges = append(badges, style.Render(mark))
	}

	return fmt.Sprintf("  %s%s  %s  %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		theme.Dim.Render(fmt.Sprintf("%-22s", d.ID)),
		strings.Join(badges, " "),
	)
}

// variationBadge is a one letter tag for the row badges.
func variationBadge(v catalog.Variation) string {
	switch v {
	case catalog.VariationCalculate:
		return "C"
	case catalog.VariationMissingValue:
		return "V"
	case catalog.VariationCompare:
		return "M"
	case catalog.VariationMissingCount:
		return "N"
	default:
		return "?"
	}
}
