// Package narrative expands context templates into question prose.
package narrative

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/synth"
	"github.com/abhisek/mathctx/internal/units"
)

// Names is the default actor pool.
var Names = []string{
	"Aisha", "Ben", "Carlos", "Dana", "Elena", "Farah", "Gabe", "Hana",
	"Ivan", "Jade", "Kofi", "Lena", "Mateo", "Nia", "Omar", "Priya",
	"Quinn", "Rosa", "Sam", "Tariq", "Uma", "Victor", "Wen", "Yusuf",
}

// ErrMissingTemplate indicates a context has no template for a level.
type ErrMissingTemplate struct {
	ContextID string
	Level     catalog.Level
}

func (e *ErrMissingTemplate) Error() string {
	return fmt.Sprintf("context %q has no %s template", e.ContextID, e.Level)
}

// Composer renders question text. It is safe for concurrent use.
type Composer struct {
	names []string
}

// New returns a Composer using the default name pool.
func New() *Composer {
	return &Composer{names: Names}
}

// NewWithNames returns a Composer drawing actors from names.
// An empty pool falls back to Names.
func NewWithNames(names []string) *Composer {
	if len(names) == 0 {
		names = Names
	}
	return &Composer{names: slices.Clone(names)}
}

// Compose renders the level's template for ds and appends the variation's
// instruction. Exactly one value is drawn from rng (the actor name), so the
// same rng state renders the same actor at every level.
func (c *Composer) Compose(def catalog.ContextDefinition, level catalog.Level, ds synth.Dataset, rng *rand.Rand) (string, error) {
	tmpl, ok := def.Template(level)
	if !ok {
		return "", &ErrMissingTemplate{ContextID: def.ID, Level: level}
	}

	name := c.names[rng.IntN(len(c.names))]
	label := def.DataLabel
	if label == "" {
		label = "values"
	}

	data, err := DataSentence(ds, label)
	if err != nil {
		return "", err
	}

	count := units.FormatCount(ds.Count())
	if ds.CountHidden {
		count = "several"
	}

	r := strings.NewReplacer(
		catalog.PlaceholderName, name,
		catalog.PlaceholderData, data,
		catalog.PlaceholderCount, count,
		catalog.PlaceholderUnit, def.Unit,
		catalog.PlaceholderLabel, label,
	)
	text := strings.TrimSpace(r.Replace(tmpl))
	return text + " " + Instruction(ds.Variation, label), nil
}

// DataSentence describes the visible data of ds in prose.
func DataSentence(ds synth.Dataset, label string) (string, error) {
	rule := ds.Rule()
	switch ds.Variation {
	case catalog.VariationCalculate:
		return fmt.Sprintf("The %s were %s.", label, list(rule, ds.Values)), nil

	case catalog.VariationMissingValue:
		visible := ds.Visible()
		return fmt.Sprintf("The mean of all %s %s was %s. One value was lost, and the other %s were %s.",
			units.FormatCount(ds.Count()), label, rule.FormatMean(ds.Mean),
			units.FormatCount(len(visible)), list(rule, visible)), nil

	case catalog.VariationMissingCount:
		return fmt.Sprintf("The %s add up to %s, and their mean is %s.",
			label, rule.FormatValue(ds.Sum()), rule.FormatMean(ds.Mean)), nil

	case catalog.VariationCompare:
		return fmt.Sprintf("Set A of the %s was %s. Set B was %s.",
			label, list(rule, ds.Values), list(rule, ds.Second)), nil

	default:
		return "", fmt.Errorf("unknown variation %q", ds.Variation)
	}
}

// Instruction returns the closing prompt for a variation.
func Instruction(v catalog.Variation, label string) string {
	switch v {
	case catalog.VariationCalculate:
		return fmt.Sprintf("Calculate the mean of the %s.", label)
	case catalog.VariationMissingValue:
		return "Find the missing value."
	case catalog.VariationMissingCount:
		return fmt.Sprintf("How many %s were recorded?", label)
	case catalog.VariationCompare:
		return "Calculate the mean of each set. Which set has the higher mean, and by how much?"
	default:
		return ""
	}
}

// list joins formatted values as "a, b and c".
func list(rule units.Rule, values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = rule.FormatValue(v)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
