package problemgen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/narrative"
	"github.com/abhisek/mathctx/internal/solve"
	"github.com/abhisek/mathctx/internal/synth"
)

// Generator produces mean questions.
type Generator interface {
	// Generate produces a single question for the given input.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// Sampler draws the dataset for one question.
type Sampler interface {
	Synthesize(def catalog.ContextDefinition, v catalog.Variation, difficulty int, rng *rand.Rand) (synth.Dataset, error)
}

// Engine implements Generator on top of a read-only catalog. It keeps no
// per-call state and is safe for concurrent use as long as each call gets
// its own rng.
type Engine struct {
	catalog  *catalog.Catalog
	sampler  Sampler
	composer *narrative.Composer
	config   Config
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSampler replaces the dataset sampler.
func WithSampler(s Sampler) Option {
	return func(e *Engine) { e.sampler = s }
}

// WithComposer replaces the narrative composer.
func WithComposer(c *narrative.Composer) Option {
	return func(e *Engine) { e.composer = c }
}

// WithLogger sets the logger for debug events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates a new Engine over cat with the given config.
func New(cat *catalog.Catalog, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		catalog:  cat,
		sampler:  synth.New(cfg.Synth),
		composer: narrative.New(),
		config:   cfg,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Compatible returns the ids of contexts supporting v.
func (e *Engine) Compatible(v catalog.Variation) []string {
	return e.catalog.Compatible(v)
}

// Context returns the definition of context id.
func (e *Engine) Context(id string) (catalog.ContextDefinition, error) {
	return e.catalog.Get(id)
}

// Generate resolves the context, draws a dataset, composes the narrative and
// solves it, in that order and on the same dataset. Any failure aborts the
// call; there are no retries and no partial questions.
func (e *Engine) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !input.Variation.Valid() {
		return nil, &ErrInvalidArgument{Field: "variation", Value: input.Variation, Reason: "unknown variation"}
	}

	rng := input.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	def, err := e.resolveContext(input, rng)
	if err != nil {
		return nil, err
	}

	if input.Difficulty < MinDifficulty || input.Difficulty > MaxDifficulty {
		return nil, &ErrInvalidArgument{Field: "difficulty", Value: input.Difficulty, Reason: "must be between 1 and 5"}
	}
	if !input.Level.Valid() {
		return nil, &ErrInvalidArgument{Field: "level", Value: input.Level, Reason: "must be minimal, standard or rich"}
	}

	ds, err := e.sampler.Synthesize(def, input.Variation, input.Difficulty, rng)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s data for %s: %w", input.Variation, def.ID, err)
	}
	// A sampler may leave these unset; the dataset must describe itself.
	ds.Variation = input.Variation
	ds.Unit = def.Unit

	text, err := e.composer.Compose(def, input.Level, ds, rng)
	if err != nil {
		return nil, err
	}

	sol, err := solve.Solve(input.Variation, ds)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", input.Variation, err)
	}

	steps := sol.Steps
	if input.OmitSteps {
		steps = []string{}
	}

	q := &Question{
		Text:       text,
		Answer:     sol.Answer,
		Steps:      steps,
		Difficulty: input.Difficulty,
		TotalMarks: e.config.TotalMarks(input.Variation, input.Difficulty),
		Given: GivenData{
			ContextID:   def.ID,
			ContextName: def.Name,
			Level:       input.Level,
			Variation:   input.Variation,
			Unit:        def.Unit,
			Values:      ds.Values,
			Second:      ds.Second,
			Hidden:      ds.Hidden,
			CountHidden: ds.CountHidden,
			Mean:        ds.Mean,
		},
	}

	// Run validators in order.
	for _, v := range e.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			e.logger.Warn("question failed validation",
				"validator", verr.Validator, "context", def.ID, "variation", input.Variation, "error", verr.Message)
			return nil, verr
		}
	}

	e.logger.Debug("question generated",
		"context", def.ID, "variation", input.Variation, "level", input.Level,
		"difficulty", input.Difficulty, "points", len(ds.Values))
	return q, nil
}

func (e *Engine) resolveContext(input GenerateInput, rng *rand.Rand) (catalog.ContextDefinition, error) {
	id := input.ContextID
	if id == "" {
		picked, err := e.catalog.PickRandomCompatible(input.Variation, rng)
		if err != nil {
			return catalog.ContextDefinition{}, err
		}
		id = picked
	}

	def, err := e.catalog.Get(id)
	if err != nil {
		return catalog.ContextDefinition{}, err
	}
	if !def.Supports(input.Variation) {
		return catalog.ContextDefinition{}, &ErrIncompatibleContext{ContextID: id, Variation: input.Variation}
	}
	return def, nil
}
