// Package solve computes answers and worked solutions from datasets.
package solve

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/synth"
	"github.com/abhisek/mathctx/internal/units"
)

// Solution is the answer to one question.
type Solution struct {
	// Answer is the formatted final answer, e.g. "$50.00".
	Answer string

	// Steps is the worked solution with literal numbers.
	Steps []string

	// Value is the numeric answer: the mean, the missing value, the count,
	// or for compare the difference B minus A.
	Value float64
}

type solver interface {
	solve(ds synth.Dataset, rule units.Rule) (Solution, error)
}

var solvers = map[catalog.Variation]solver{
	catalog.VariationCalculate:    calculateSolver{},
	catalog.VariationMissingValue: missingValueSolver{},
	catalog.VariationCompare:      compareSolver{},
	catalog.VariationMissingCount: missingCountSolver{},
}

// Solve derives the answer for variation from ds. It is a pure function of
// its inputs.
func Solve(v catalog.Variation, ds synth.Dataset) (Solution, error) {
	s, ok := solvers[v]
	if !ok {
		return Solution{}, fmt.Errorf("unknown variation %q", v)
	}
	if len(ds.Values) == 0 {
		return Solution{}, errors.New("empty dataset")
	}
	return s.solve(ds, ds.Rule())
}

type calculateSolver struct{}

func (calculateSolver) solve(ds synth.Dataset, rule units.Rule) (Solution, error) {
	sum := synth.SumOf(rule, ds.Values)
	n := len(ds.Values)
	mean := synth.MeanOf(rule, ds.Values)
	return Solution{
		Answer: rule.FormatMean(mean),
		Steps: []string{
			fmt.Sprintf("Add all values: %s = %s", addition(rule, ds.Values), rule.FormatValue(sum)),
			fmt.Sprintf("Count the values: %d", n),
			fmt.Sprintf("Divide the sum by the count: %s / %d = %s%s",
				rule.FormatValue(sum), n, rule.FormatMean(mean), roundedNote(sum/float64(n), mean)),
		},
		Value: mean,
	}, nil
}

type missingValueSolver struct{}

func (missingValueSolver) solve(ds synth.Dataset, rule units.Rule) (Solution, error) {
	if _, ok := ds.HiddenValue(); !ok {
		return Solution{}, errors.New("missing_value dataset has no hidden value")
	}
	visible := ds.Visible()
	n := ds.Count()
	total := rule.Round(ds.Mean * float64(n))
	known := synth.SumOf(rule, visible)
	missing := rule.Round(total - known)
	return Solution{
		Answer: rule.FormatValue(missing),
		Steps: []string{
			fmt.Sprintf("Total of all values = mean x count: %s x %d = %s",
				rule.FormatPlainMean(ds.Mean), n, rule.FormatValue(total)),
			fmt.Sprintf("Add the known values: %s = %s", addition(rule, visible), rule.FormatValue(known)),
			fmt.Sprintf("Missing value = total - known sum: %s - %s = %s",
				rule.FormatPlain(total), term(rule.FormatPlain(known)), rule.FormatValue(missing)),
		},
		Value: missing,
	}, nil
}

type missingCountSolver struct{}

func (missingCountSolver) solve(ds synth.Dataset, rule units.Rule) (Solution, error) {
	if ds.Mean == 0 {
		return Solution{}, errors.New("missing_count dataset has a zero mean")
	}
	sum := synth.SumOf(rule, ds.Values)
	raw := sum / ds.Mean
	count := RoundHalfUp(raw)

	division := fmt.Sprintf("%s / %s = %s", rule.FormatValue(sum), rule.FormatMean(ds.Mean), units.FormatCount(count))
	if math.Abs(raw-float64(count)) > 1e-9 {
		division = fmt.Sprintf("%s / %s = %s, which rounds to %s",
			rule.FormatValue(sum), rule.FormatMean(ds.Mean), units.Number(raw, 2), units.FormatCount(count))
	}
	return Solution{
		Answer: units.FormatCount(count),
		Steps: []string{
			"Number of values = sum / mean",
			"Divide the sum by the mean: " + division,
		},
		Value: float64(count),
	}, nil
}

type compareSolver struct{}

func (compareSolver) solve(ds synth.Dataset, rule units.Rule) (Solution, error) {
	if len(ds.Second) == 0 {
		return Solution{}, errors.New("compare dataset has no second set")
	}
	meanA := synth.MeanOf(rule, ds.Values)
	meanB := synth.MeanOf(rule, ds.Second)
	diff := rule.RoundMean(meanB - meanA)

	var verdict string
	switch {
	case diff > 0:
		verdict = "Set B is higher by " + rule.FormatMean(diff)
	case diff < 0:
		verdict = "Set A is higher by " + rule.FormatMean(-diff)
	default:
		verdict = "Both sets have the same mean"
	}

	hi, lo := meanB, meanA
	if diff < 0 {
		hi, lo = meanA, meanB
	}
	return Solution{
		Answer: fmt.Sprintf("Set A: %s, Set B: %s. %s.", rule.FormatMean(meanA), rule.FormatMean(meanB), verdict),
		Steps: []string{
			meanStep(rule, "A", ds.Values, meanA),
			meanStep(rule, "B", ds.Second, meanB),
			fmt.Sprintf("Difference: %s - %s = %s",
				rule.FormatPlainMean(hi), term(rule.FormatPlainMean(lo)), rule.FormatMean(math.Abs(diff))),
		},
		Value: diff,
	}, nil
}

func meanStep(rule units.Rule, name string, values []float64, mean float64) string {
	sum := synth.SumOf(rule, values)
	return fmt.Sprintf("Mean of Set %s: %s = %s, then %s / %d = %s%s",
		name, addition(rule, values), rule.FormatValue(sum),
		rule.FormatValue(sum), len(values), rule.FormatMean(mean), roundedNote(sum/float64(len(values)), mean))
}

// RoundHalfUp rounds x to the nearest integer, ties toward positive infinity.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// addition renders "a + b + c" with negative terms parenthesised.
func addition(rule units.Rule, values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = term(rule.FormatPlain(v))
	}
	return strings.Join(parts, " + ")
}

func term(s string) string {
	if strings.HasPrefix(s, "-") {
		return "(" + s + ")"
	}
	return s
}

func roundedNote(exact, rounded float64) string {
	if math.Abs(exact-rounded) > 1e-9 {
		return " (rounded)"
	}
	return ""
}
