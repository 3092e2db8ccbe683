package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/solve"
	"github.com/abhisek/mathctx/internal/synth"
)

// MathCheckValidator independently re-solves the recorded dataset and
// compares the result with the question's answer. For variations that
// withhold a quantity it also checks the quantity is recoverable.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	ds := q.Given.Dataset()
	sol, err := solve.Solve(q.Given.Variation, ds)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if sol.Answer != q.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but question claims %q", sol.Answer, q.Answer),
		}
	}

	switch q.Given.Variation {
	case catalog.VariationMissingValue:
		hidden, _ := ds.HiddenValue()
		if sol.Value != hidden {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("missing value recovers as %v, withheld %v", sol.Value, hidden),
			}
		}
	case catalog.VariationMissingCount:
		if int(sol.Value) != ds.Count() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("count recovers as %v, dataset has %d values", sol.Value, ds.Count()),
			}
		}
	}
	return nil
}

// DataCheckValidator checks that the question text shows the data the answer
// was computed from: every visible value appears, formatted with the same
// precision the answer uses.
type DataCheckValidator struct{}

func (v *DataCheckValidator) Name() string { return "data-check" }

func (v *DataCheckValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	ds := q.Given.Dataset()
	rule := ds.Rule()

	var shown []float64
	switch q.Given.Variation {
	case catalog.VariationMissingCount:
		shown = []float64{ds.Sum()}
	case catalog.VariationCompare:
		shown = append(ds.Visible(), ds.Second...)
	default:
		shown = ds.Visible()
	}
	for _, x := range shown {
		if s := rule.FormatValue(x); !strings.Contains(q.Text, s) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("value %s is missing from question_text", s),
			}
		}
	}

	if q.Given.Variation == catalog.VariationMissingValue || q.Given.Variation == catalog.VariationMissingCount {
		if s := rule.FormatMean(ds.Mean); !strings.Contains(q.Text, s) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("mean %s is missing from question_text", s),
			}
		}
	}
	if q.Given.Variation == catalog.VariationMissingCount && ds.Mean != synth.MeanOf(rule, ds.Values) {
		return &ValidationError{Validator: v.Name(), Message: "stated mean is not the mean of the dataset"}
	}
	return nil
}
