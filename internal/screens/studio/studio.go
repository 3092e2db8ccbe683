// Package studio is the interactive question studio: pick a variation,
// context, level and difficulty, generate, and inspect the answer and steps.
package studio

import (
	"context"
	"math/rand/v2"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/screen"
	"github.com/abhisek/mathctx/internal/ui/components"
	"github.com/abhisek/mathctx/internal/ui/layout"
)

// Engine is the part of the question engine the studio drives.
type Engine interface {
	problemgen.Generator
	Compatible(v catalog.Variation) []string
	Context(id string) (catalog.ContextDefinition, error)
}

// RandomContext is the context option that lets the engine pick.
const RandomContext = "random"

type field int

const (
	fieldVariation field = iota
	fieldContext
	fieldLevel
	fieldDifficulty
	fieldSeed
	fieldCount
)

// questionReadyMsg carries a finished generation. seq identifies the request
// so a slow, superseded result is dropped.
type questionReadyMsg struct {
	Question *problemgen.Question
	Err      error
	seq      int
}

// StudioScreen is the question studio.
type StudioScreen struct {
	engine Engine
	rng    *rand.Rand

	variation  components.Selector
	context    components.Selector
	level      components.Selector
	difficulty int
	seed       components.TextInput
	focus      field

	question   *problemgen.Question
	err        error
	generating bool
	seq        int
	showAnswer bool
	showSteps  bool
}

var (
	_ screen.Screen          = (*StudioScreen)(nil)
	_ screen.KeyHintProvider = (*StudioScreen)(nil)
	_ screen.Capturing       = (*StudioScreen)(nil)
)

// Option configures a StudioScreen.
type Option func(*StudioScreen)

// WithContext preselects a context and the first variation it supports.
func WithContext(id string) Option {
	return func(s *StudioScreen) {
		def, err := s.engine.Context(id)
		if err != nil || len(def.Variations) == 0 {
			return
		}
		s.variation.Select(string(def.Variations[0]))
		s.refreshContexts()
		s.context.Select(id)
	}
}

// WithRand sets the source of per-question seeds when no seed is typed.
func WithRand(rng *rand.Rand) Option {
	return func(s *StudioScreen) { s.rng = rng }
}

// New creates a studio over engine.
func New(engine Engine, opts ...Option) *StudioScreen {
	variations := make([]string, 0, len(catalog.AllVariations()))
	for _, v := range catalog.AllVariations() {
		variations = append(variations, string(v))
	}
	levels := make([]string, 0, len(catalog.AllLevels()))
	for _, l := range catalog.AllLevels() {
		levels = append(levels, string(l))
	}

	s := &StudioScreen{
		engine:     engine,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		variation:  components.NewSelector("Variation", variations),
		context:    components.NewSelector("Context", nil),
		level:      components.NewSelector("Level", levels),
		difficulty: 2,
		seed:       components.NewTextInput("random", false, 32),
	}
	s.level.Select(string(catalog.LevelStandard))
	s.refreshContexts()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StudioScreen) Init() tea.Cmd {
	return nil
}

func (s *StudioScreen) Title() string {
	return "Question Studio"
}

// CapturesKeys is true while the seed field is being edited.
func (s *StudioScreen) CapturesKeys() bool {
	return s.focus == fieldSeed
}

func (s *StudioScreen) KeyHints() []layout.KeyHint {
	if s.focus == fieldSeed {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
		{Key: "s", Description: "Same context"},
		{Key: "r", Description: "Random context"},
		{Key: "a", Description: "Answer"},
		{Key: "t", Description: "Steps"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudioScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.generating = false
		s.question, s.err = msg.Question, msg.Err
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldSeed {
		var cmd tea.Cmd
		s.seed, cmd = s.seed.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudioScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up":
		return s, s.moveFocus(-1)
	case "down", "tab":
		return s, s.moveFocus(1)
	case "enter":
		return s, s.generate(s.context.Value())
	}

	if s.focus == fieldSeed {
		if key == "esc" {
			return s, s.moveFocus(-1)
		}
		var cmd tea.Cmd
		s.seed, cmd = s.seed.Update(msg)
		return s, cmd
	}

	switch key {
	case "k":
		return s, s.moveFocus(-1)
	case "j":
		return s, s.moveFocus(1)
	case "left", "h":
		s.change(-1)
	case "right", "l":
		s.change(1)
	case "g":
		return s, s.generate(s.context.Value())
	case "r":
		return s, s.generate(RandomContext)
	case "s":
		if s.question != nil {
			return s, s.generate(s.question.Given.ContextID)
		}
		return s, s.generate(s.context.Value())
	case "a":
		s.showAnswer = !s.showAnswer
	case "t":
		s.showSteps = !s.showSteps
	}
	return s, nil
}

func (s *StudioScreen) moveFocus(delta int) tea.Cmd {
	next := field((int(s.focus) + delta + int(fieldCount)) % int(fieldCount))
	s.focus = next
	if next == fieldSeed {
		return s.seed.Focus()
	}
	s.seed.Blur()
	return nil
}

// change steps the focused field's value.
func (s *StudioScreen) change(delta int) {
	step := func(sel *components.Selector) {
		if delta > 0 {
			sel.Next()
		} else {
			sel.Prev()
		}
	}
	switch s.focus {
	case fieldVariation:
		step(&s.variation)
		s.refreshContexts()
	case fieldContext:
		step(&s.context)
	case fieldLevel:
		step(&s.level)
	case fieldDifficulty:
		s.difficulty = min(max(s.difficulty+delta, problemgen.MinDifficulty), problemgen.MaxDifficulty)
	}
}

// refreshContexts limits the context choices to those compatible with the
// selected variation.
func (s *StudioScreen) refreshContexts() {
	ids := s.engine.Compatible(catalog.Variation(s.variation.Value()))
	s.context.SetOptions(append([]string{RandomContext}, ids...))
}

// generate starts a generation for contextID; RandomContext lets the engine
// pick among compatible contexts.
func (s *StudioScreen) generate(contextID string) tea.Cmd {
	if contextID == RandomContext {
		contextID = ""
	}
	input := problemgen.GenerateInput{
		Variation:  catalog.Variation(s.variation.Value()),
		ContextID:  contextID,
		Level:      catalog.Level(s.level.Value()),
		Difficulty: s.difficulty,
		Rand:       problemgen.NewRand(s.nextSeed()),
	}

	s.seq++
	s.generating = true
	seq := s.seq
	engine := s.engine
	return func() tea.Msg {
		q, err := engine.Generate(context.Background(), input)
		return questionReadyMsg{Question: q, Err: err, seq: seq}
	}
}

// nextSeed returns the typed seed, or a fresh one from the studio rng.
func (s *StudioScreen) nextSeed() uint64 {
	typed := s.seed.Value()
	if typed == "" {
		return s.rng.Uint64()
	}
	if n, err := strconv.ParseUint(typed, 10, 64); err == nil {
		return n
	}
	return problemgen.SeedFromString(typed)
}
