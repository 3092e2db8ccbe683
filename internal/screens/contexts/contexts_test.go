package contexts

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/router"
	"github.com/abhisek/mathctx/internal/screens/studio"
)

func newTestBrowser() *BrowserScreen {
	cat := catalog.Default()
	return New(cat, problemgen.New(cat, problemgen.DefaultConfig()))
}

func TestCursorStartsOnFirstContext(t *testing.T) {
	b := newTestBrowser()
	def, ok := b.Selected()
	if !ok {
		t.Fatal("expected a selected context")
	}
	cat := catalog.Default()
	first := cat.ByCategory(cat.Categories()[0])[0]
	if def.ID != first.ID {
		t.Errorf("selected %s, want %s", def.ID, first.ID)
	}
}

func TestCursorSkipsHeaders(t *testing.T) {
	b := newTestBrowser()
	total := catalog.Default().Len()

	seen := map[string]bool{}
	for range total + 3 {
		def, ok := b.Selected()
		if !ok {
			t.Fatal("cursor landed on a category header")
		}
		seen[def.ID] = true
		b.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if len(seen) != total {
		t.Errorf("visited %d contexts, want %d", len(seen), total)
	}
}

func TestTabJumpsCategory(t *testing.T) {
	b := newTestBrowser()
	cats := catalog.Default().Categories()

	b.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	def, _ := b.Selected()
	if def.Category != cats[1] {
		t.Errorf("category after tab = %q, want %q", def.Category, cats[1])
	}

	b.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	def, _ = b.Selected()
	if def.Category != cats[0] {
		t.Errorf("category after shift+tab = %q, want %q", def.Category, cats[0])
	}
}

func TestEnterOpensDetail(t *testing.T) {
	b := newTestBrowser()
	want, _ := b.Selected()

	_, cmd := b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != want.Name {
		t.Errorf("detail title = %q, want %q", push.Screen.Title(), want.Name)
	}
	if !strings.Contains(push.Screen.View(100, 40), "MINIMAL") {
		t.Error("detail should list the templates")
	}
}

func TestDetailOpensStudio(t *testing.T) {
	cat := catalog.Default()
	def, err := cat.Get("server_tips")
	if err != nil {
		t.Fatal(err)
	}
	d := newDetail(def, problemgen.New(cat, problemgen.DefaultConfig()))

	_, cmd := d.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*studio.StudioScreen); !ok {
		t.Errorf("pushed %T, want studio", push.Screen)
	}
}

func TestViewListsCategories(t *testing.T) {
	b := newTestBrowser()
	view := b.View(100, 60)
	for _, c := range catalog.Default().Categories() {
		if !strings.Contains(view, strings.ToUpper(c)) {
			t.Errorf("view missing category %q", c)
		}
	}
}
