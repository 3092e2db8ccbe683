package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/router"
	"github.com/abhisek/mathctx/internal/screens/studio"
)

func newTestApp() AppModel {
	cat := catalog.Default()
	return newAppModel(Options{
		Engine:  problemgen.New(cat, problemgen.DefaultConfig()),
		Catalog: cat,
		Status:  "built-in catalog",
	})
}

// push runs cmd and applies the resulting router message.
func push(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(AppModel)
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := newTestApp()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Errorf("esc on the home screen returned a command")
	}
}

func TestEscPopsScreen(t *testing.T) {
	m := newTestApp()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = push(t, m, cmd)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg")
	}
}

func TestEscGoesToCapturingScreen(t *testing.T) {
	m := newTestApp()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = push(t, m, cmd)

	s, ok := m.router.Active().(*studio.StudioScreen)
	if !ok {
		t.Fatalf("active screen is %T", m.router.Active())
	}
	// Seed is the last field.
	for !s.CapturesKeys() {
		next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		m = next.(AppModel)
	}

	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = next.(AppModel)
	if m.router.Depth() != 2 {
		t.Errorf("esc left the studio while editing the seed")
	}
	if s.CapturesKeys() {
		t.Errorf("esc should move focus off the seed field")
	}
}

func TestFooterHintsFollowActiveScreen(t *testing.T) {
	m := newTestApp()
	if hints := m.footerHints(m.router.Active()); len(hints) != 3 || hints[1].Key != "Enter" {
		t.Errorf("home hints = %+v", hints)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = push(t, m, cmd)
	hints := m.footerHints(m.router.Active())
	if len(hints) == 0 || hints[len(hints)-1].Key != "Esc" {
		t.Errorf("studio hints = %+v", hints)
	}
}
