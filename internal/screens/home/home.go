package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/router"
	"github.com/abhisek/mathctx/internal/screen"
	"github.com/abhisek/mathctx/internal/screens/contexts"
	"github.com/abhisek/mathctx/internal/screens/studio"
	"github.com/abhisek/mathctx/internal/ui/components"
	"github.com/abhisek/mathctx/internal/ui/layout"
)

// HomeScreen is the studio's start screen: a catalog summary and the menu.
type HomeScreen struct {
	menu    components.Menu
	labels  []string
	summary summary
}

var _ screen.Screen = (*HomeScreen)(nil)

// summary is what the home card shows about the active catalog.
type summary struct {
	contexts   int
	categories int
	perVar     []variationCount
}

type variationCount struct {
	variation catalog.Variation
	contexts  int
}

// New creates the home screen for cat. engine backs the studio screens it
// opens and must be built over the same catalog.
func New(cat *catalog.Catalog, engine studio.Engine) *HomeScreen {
	labels := []string{"QUESTION STUDIO", "BROWSE CONTEXTS", "QUIT"}
	items := []components.MenuItem{
		{Label: labels[0], Action: func() tea.Cmd {
			s := studio.New(engine)
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}},
		{Label: labels[1], Action: func() tea.Cmd {
			b := contexts.New(cat, engine)
			return func() tea.Msg { return router.PushScreenMsg{Screen: b} }
		}},
		{Label: labels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	sum := summary{contexts: cat.Len(), categories: len(cat.Categories())}
	for _, v := range catalog.AllVariations() {
		sum.perVar = append(sum.perVar, variationCount{variation: v, contexts: len(cat.Compatible(v))})
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		labels:  labels,
		summary: sum,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderSummary(h.summary, cw, compact),
		renderMenu(h.labels, h.menu.Selected, cw, compact),
	}
	return components.CenterFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
