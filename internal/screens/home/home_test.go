package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/router"
	"github.com/abhisek/mathctx/internal/screens/contexts"
	"github.com/abhisek/mathctx/internal/screens/studio"
)

func newTestHome() *HomeScreen {
	cat := catalog.Default()
	return New(cat, problemgen.New(cat, problemgen.DefaultConfig()))
}

func TestSummaryCountsCatalog(t *testing.T) {
	h := newTestHome()
	cat := catalog.Default()

	if h.summary.contexts != cat.Len() || h.summary.categories != len(cat.Categories()) {
		t.Errorf("summary = %+v", h.summary)
	}
	for _, vc := range h.summary.perVar {
		if want := len(cat.Compatible(vc.variation)); vc.contexts != want {
			t.Errorf("%s: %d contexts, want %d", vc.variation, vc.contexts, want)
		}
	}
}

func TestMenuOpensScreens(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		check func(t *testing.T, msg tea.Msg)
	}{
		{"studio", 0, func(t *testing.T, msg tea.Msg) {
			push, ok := msg.(router.PushScreenMsg)
			if !ok {
				t.Fatalf("expected PushScreenMsg, got %T", msg)
			}
			if _, ok := push.Screen.(*studio.StudioScreen); !ok {
				t.Errorf("pushed %T, want studio", push.Screen)
			}
		}},
		{"contexts", 1, func(t *testing.T, msg tea.Msg) {
			push, ok := msg.(router.PushScreenMsg)
			if !ok {
				t.Fatalf("expected PushScreenMsg, got %T", msg)
			}
			if _, ok := push.Screen.(*contexts.BrowserScreen); !ok {
				t.Errorf("pushed %T, want context browser", push.Screen)
			}
		}},
		{"quit", 2, func(t *testing.T, msg tea.Msg) {
			if _, ok := msg.(tea.QuitMsg); !ok {
				t.Errorf("expected QuitMsg, got %T", msg)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHome()
			for range tt.downs {
				h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
			}
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected a command")
			}
			tt.check(t, cmd())
		})
	}
}

func TestViewShowsMenu(t *testing.T) {
	view := newTestHome().View(100, 40)
	for _, want := range []string{"QUESTION STUDIO", "BROWSE CONTEXTS", "CONTEXTS"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
