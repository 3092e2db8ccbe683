package problemgen

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/synth"
)

// Question is a fully composed question. It is built once per Generate call
// and never modified afterwards.
type Question struct {
	// Text is the composed narrative followed by the instruction.
	Text string `json:"question_text"`

	// Answer is the formatted final answer, e.g. "$50.00".
	Answer string `json:"answer"`

	// Steps is the worked solution. Empty when the request set OmitSteps.
	Steps []string `json:"solution_steps"`

	// Difficulty echoes the request (1-5).
	Difficulty int `json:"difficulty"`

	// TotalMarks is derived from the variation and difficulty.
	TotalMarks int `json:"total_marks"`

	// Given records what the question was built from.
	Given GivenData `json:"given_data"`
}

// GivenData is the traceable input of a question: the request choices plus
// the raw dataset.
type GivenData struct {
	ContextID   string            `json:"context_id"`
	ContextName string            `json:"context_name"`
	Level       catalog.Level     `json:"level"`
	Variation   catalog.Variation `json:"variation"`
	Unit        string            `json:"unit"`
	Values      []float64         `json:"values"`
	Second      []float64         `json:"second_values,omitempty"`
	Hidden      int               `json:"hidden_index"`
	CountHidden bool              `json:"count_hidden,omitempty"`
	Mean        float64           `json:"mean"`
}

// Dataset rebuilds the dataset the question was generated from.
func (g GivenData) Dataset() synth.Dataset {
	return synth.Dataset{
		Variation:   g.Variation,
		Unit:        g.Unit,
		Values:      slices.Clone(g.Values),
		Second:      slices.Clone(g.Second),
		Hidden:      g.Hidden,
		CountHidden: g.CountHidden,
		Mean:        g.Mean,
	}
}

// GenerateInput is one generation request.
type GenerateInput struct {
	// Variation is the kind of mean question to build.
	Variation catalog.Variation

	// ContextID selects the context. Empty picks a random compatible one.
	ContextID string

	// Level is the narrative detail level.
	Level catalog.Level

	// Difficulty is 1 (easiest) to 5.
	Difficulty int

	// OmitSteps leaves Question.Steps empty.
	OmitSteps bool

	// Rand is the randomness source. Nil uses a freshly seeded generator.
	// A *rand.Rand is not safe for concurrent use, so concurrent calls
	// need separate sources.
	Rand *rand.Rand
}
