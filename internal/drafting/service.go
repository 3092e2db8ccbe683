// Package drafting asks a language model for new catalog contexts and only
// hands back drafts that load cleanly and generate questions.
package drafting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/llm"
	"github.com/abhisek/mathctx/internal/problemgen"
)

// Request describes the scenario to draft.
type Request struct {
	// Topic is a free-form description, e.g. "swimming lap times".
	Topic string

	// Category, Unit and Variations are optional hints. Variations listed
	// here must appear in the draft.
	Category   string
	Unit       string
	Variations []catalog.Variation
}

// Draft is an accepted context.
type Draft struct {
	Definition catalog.ContextDefinition
	Row        catalog.Row

	// Attempts is the number of provider calls it took.
	Attempts int
}

// ErrRejected means every attempt produced a draft that failed validation.
type ErrRejected struct {
	Attempts int
	Err      error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("draft rejected after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ErrRejected) Unwrap() error {
	return e.Err
}

// Service drafts contexts for an existing catalog.
type Service struct {
	provider llm.Provider
	catalog  *catalog.Catalog
	config   Config
	logger   *slog.Logger
}

// New creates a Service. existing may be nil; when set, drafted ids must not
// collide with it.
func New(provider llm.Provider, existing *catalog.Catalog, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		provider: provider,
		catalog:  existing,
		config:   cfg,
		logger:   logger,
	}
}

// Draft asks the provider for a context matching req. A draft that fails
// validation is sent back with the reason, up to Config.MaxRepairs times.
// Provider errors are returned as is.
func (s *Service) Draft(ctx context.Context, req Request) (*Draft, error) {
	if req.Topic == "" {
		return nil, errors.New("topic is required")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeContextDraft)

	messages := llm.UserMessage(buildUserMessage(req, s.catalog))
	var lastErr error
	attempts := 0
	for attempts <= s.config.MaxRepairs {
		attempts++

		entry, resp, err := llm.GenerateJSON[catalog.Entry](ctx, s.provider, llm.Request{
			System:      systemPrompt,
			Messages:    messages,
			Schema:      ContextSchema,
			MaxTokens:   s.config.MaxTokens,
			Temperature: s.config.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("drafting context: %w", err)
		}

		def, err := s.accept(ctx, entry, req)
		if err == nil {
			s.logger.Debug("context drafted", "id", def.ID, "attempts", attempts)
			return &Draft{Definition: def, Row: entry.Row(), Attempts: attempts}, nil
		}

		s.logger.Debug("draft rejected", "id", entry.ID, "attempt", attempts, "error", err)
		lastErr = err
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(resp.Content)},
			llm.Message{Role: llm.RoleUser, Content: repairMessage(err)},
		)
	}
	return nil, &ErrRejected{Attempts: attempts, Err: lastErr}
}

// accept loads the entry as a one-context catalog and generates a question
// for every supported variation and level at both difficulty extremes.
func (s *Service) accept(ctx context.Context, entry catalog.Entry, req Request) (catalog.ContextDefinition, error) {
	if s.catalog != nil && s.catalog.Has(entry.ID) {
		return catalog.ContextDefinition{}, fmt.Errorf("id %q already exists in the catalog", entry.ID)
	}

	cat, err := catalog.Load([]catalog.Row{entry.Row()})
	if err != nil {
		return catalog.ContextDefinition{}, err
	}
	def, err := cat.Get(entry.ID)
	if err != nil {
		return catalog.ContextDefinition{}, err
	}

	for _, v := range req.Variations {
		if !slices.Contains(def.Variations, v) {
			return catalog.ContextDefinition{}, fmt.Errorf("variation %s is required but not supported", v)
		}
	}
	if req.Unit != "" && def.Unit != req.Unit {
		return catalog.ContextDefinition{}, fmt.Errorf("unit must be %q, got %q", req.Unit, def.Unit)
	}

	engine := problemgen.New(cat, problemgen.DefaultConfig(), problemgen.WithLogger(s.logger))
	rng := problemgen.NewRand(s.config.CheckSeed)
	for _, v := range def.Variations {
		for _, level := range catalog.AllLevels() {
			for _, difficulty := range []int{problemgen.MinDifficulty, problemgen.MaxDifficulty} {
				_, err := engine.Generate(ctx, problemgen.GenerateInput{
					Variation:  v,
					ContextID:  def.ID,
					Level:      level,
					Difficulty: difficulty,
					Rand:       rng,
				})
				if err != nil {
					return catalog.ContextDefinition{}, fmt.Errorf("trial %s question at %s level, difficulty %d: %w", v, level, difficulty, err)
				}
			}
		}
	}
	return def, nil
}
