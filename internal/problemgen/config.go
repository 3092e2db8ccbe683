package problemgen

import (
	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/synth"
)

// Difficulty bounds accepted by Generate.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Config controls the behavior of the Engine.
type Config struct {
	// Synth holds the dataset size table.
	Synth synth.Config

	// Validators is the ordered list of checks run on every assembled
	// question. The first failure stops the pipeline and fails the call.
	Validators []Validator

	// BaseMarks is the mark value of each variation at difficulty 1.
	// Every second difficulty level adds one mark.
	BaseMarks map[catalog.Variation]int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Synth: synth.DefaultConfig(),
		Validators: []Validator{
			&StructuralValidator{},
			&DataCheckValidator{},
			&MathCheckValidator{},
		},
		BaseMarks: map[catalog.Variation]int{
			catalog.VariationCalculate:    2,
			catalog.VariationMissingValue: 3,
			catalog.VariationMissingCount: 3,
			catalog.VariationCompare:      4,
		},
	}
}

// TotalMarks returns the marks for a question of variation v at difficulty.
func (c Config) TotalMarks(v catalog.Variation, difficulty int) int {
	base, ok := c.BaseMarks[v]
	if !ok {
		base = 2
	}
	return base + (difficulty-1)/2
}
