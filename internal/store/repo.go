package store

import (
	"context"
	"time"

	"github.com/abhisek/mathctx/internal/catalog"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// ContextRepo persists an imported catalog. Rows are stored as validated
// definitions and handed back as raw rows so every read goes through
// catalog validation again.
type ContextRepo interface {
	// Replace swaps the stored catalog for defs in one transaction.
	Replace(ctx context.Context, defs []catalog.ContextDefinition) error

	// Rows returns the stored catalog in import order.
	Rows(ctx context.Context) ([]catalog.Row, error)

	// Count returns the number of stored contexts.
	Count(ctx context.Context) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
}
