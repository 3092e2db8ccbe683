package studio

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/screen"
)

func newTestStudio(opts ...Option) *StudioScreen {
	engine := problemgen.New(catalog.Default(), problemgen.DefaultConfig())
	opts = append([]Option{WithRand(problemgen.NewRand(7))}, opts...)
	return New(engine, opts...)
}

func press(s *StudioScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// run executes cmd and feeds the resulting message back into the screen.
func run(t *testing.T, s *StudioScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if _, ok := msg.(questionReadyMsg); !ok {
		t.Fatalf("expected questionReadyMsg, got %T", msg)
	}
	s.Update(msg)
}

func TestGenerateOnEnter(t *testing.T) {
	s := newTestStudio()

	run(t, s, press(s, tea.KeyPressMsg{Code: tea.KeyEnter}))

	if s.err != nil {
		t.Fatalf("unexpected error: %v", s.err)
	}
	if s.question == nil {
		t.Fatal("expected a question")
	}
	if s.question.Given.Variation != catalog.VariationCalculate {
		t.Errorf("variation = %s, want calculate", s.question.Given.Variation)
	}
	if s.question.Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2", s.question.Difficulty)
	}
	if !strings.Contains(s.View(100, 40), s.question.Given.ContextName) {
		t.Error("view should show the context name")
	}
}

func TestVariationChangeLimitsContexts(t *testing.T) {
	s := newTestStudio()
	press(s, tea.KeyPressMsg{Code: tea.KeyRight})

	if got := s.variation.Value(); got != string(catalog.VariationMissingValue) {
		t.Fatalf("variation = %s, want missing_value", got)
	}
	if s.context.Options[0] != RandomContext {
		t.Errorf("first context option = %q, want random", s.context.Options[0])
	}
	cat := catalog.Default()
	for _, id := range s.context.Options[1:] {
		if !cat.IsCompatible(id, catalog.VariationMissingValue) {
			t.Errorf("context %s offered but not compatible with missing_value", id)
		}
	}
	if len(s.context.Options)-1 != len(cat.Compatible(catalog.VariationMissingValue)) {
		t.Errorf("offered %d contexts, want %d", len(s.context.Options)-1, len(cat.Compatible(catalog.VariationMissingValue)))
	}
}

func TestSameContextRegenerate(t *testing.T) {
	s := newTestStudio()
	run(t, s, press(s, tea.KeyPressMsg{Code: tea.KeyEnter}))
	first := s.question

	run(t, s, press(s, key('s')))

	if s.question.Given.ContextID != first.Given.ContextID {
		t.Errorf("context changed from %s to %s", first.Given.ContextID, s.question.Given.ContextID)
	}
}

func TestTypedSeedIsDeterministic(t *testing.T) {
	s := newTestStudio()
	s.seed.SetValue("42")

	run(t, s, press(s, tea.KeyPressMsg{Code: tea.KeyEnter}))
	first := s.question.Text
	run(t, s, press(s, tea.KeyPressMsg{Code: tea.KeyEnter}))

	if s.question.Text != first {
		t.Errorf("same seed produced different questions:\n%s\n%s", first, s.question.Text)
	}
}

func TestPreselectedContext(t *testing.T) {
	s := newTestStudio(WithContext("heart_rate"))
	if s.context.Value() != "heart_rate" {
		t.Fatalf("context = %q, want heart_rate", s.context.Value())
	}

	run(t, s, press(s, tea.KeyPressMsg{Code: tea.KeyEnter}))
	if s.question.Given.ContextID != "heart_rate" {
		t.Errorf("generated context = %s, want heart_rate", s.question.Given.ContextID)
	}
	if !strings.Contains(s.View(100, 40), "Heart Rate Monitoring") {
		t.Error("view should describe the selected context")
	}
}

func TestDifficultyClamps(t *testing.T) {
	s := newTestStudio()
	for range 3 {
		press(s, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.focus != fieldDifficulty {
		t.Fatalf("focus = %d, want difficulty", s.focus)
	}

	for range 10 {
		press(s, tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if s.difficulty != problemgen.MaxDifficulty {
		t.Errorf("difficulty = %d, want %d", s.difficulty, problemgen.MaxDifficulty)
	}
	for range 10 {
		press(s, tea.KeyPressMsg{Code: tea.KeyLeft})
	}
	if s.difficulty != problemgen.MinDifficulty {
		t.Errorf("difficulty = %d, want %d", s.difficulty, problemgen.MinDifficulty)
	}
}

func TestAnswerToggle(t *testing.T) {
	s := newTestStudio()
	run(t, s, press(s, tea.KeyPressMsg{Code: tea.KeyEnter}))

	if strings.Contains(s.View(100, 40), "Answer: ") {
		t.Error("answer should start hidden")
	}
	press(s, key('a'))
	if !s.showAnswer {
		t.Fatal("a should reveal the answer")
	}
	press(s, key('t'))
	if !s.showSteps {
		t.Error("t should show the steps")
	}
}

func TestStaleResultDropped(t *testing.T) {
	s := newTestStudio()
	stale := press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	fresh := press(s, key('r'))

	s.Update(fresh())
	want := s.question
	s.Update(stale())

	if s.question != want {
		t.Error("a superseded result replaced the latest question")
	}
}

func TestSeedFieldCapturesKeys(t *testing.T) {
	s := newTestStudio()
	var sc screen.Capturing = s
	if sc.CapturesKeys() {
		t.Fatal("should not capture keys outside the seed field")
	}
	for range 4 {
		press(s, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if !sc.CapturesKeys() {
		t.Fatal("seed field should capture keys")
	}

	press(s, key('a'))
	if s.showAnswer {
		t.Error("typing in the seed field toggled the answer")
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	if sc.CapturesKeys() {
		t.Error("esc should leave the seed field")
	}
}
