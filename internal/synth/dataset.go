package synth

import (
	"slices"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/units"
)

// Dataset is the numeric data behind one question.
type Dataset struct {
	Variation catalog.Variation

	// Unit is the context's display unit; it selects the precision rule.
	Unit string

	// Values is the full primary dataset (set A for compare), in prompt order.
	Values []float64

	// Second is set B for compare; nil otherwise.
	Second []float64

	// Hidden is the index in Values withheld from the prompt for
	// missing_value, or -1.
	Hidden int

	// CountHidden is true when the number of values is withheld
	// (missing_count).
	CountHidden bool

	// Mean is the mean of the full primary dataset at mean precision.
	// For missing_value and missing_count it is exact.
	Mean float64
}

// Rule returns the precision rule for the dataset's unit.
func (d Dataset) Rule() units.Rule {
	return units.For(d.Unit)
}

// Visible returns the values shown in the prompt.
func (d Dataset) Visible() []float64 {
	if d.Hidden < 0 || d.Hidden >= len(d.Values) {
		return slices.Clone(d.Values)
	}
	out := make([]float64, 0, len(d.Values)-1)
	out = append(out, d.Values[:d.Hidden]...)
	return append(out, d.Values[d.Hidden+1:]...)
}

// HiddenValue returns the withheld value, if any.
func (d Dataset) HiddenValue() (float64, bool) {
	if d.Hidden < 0 || d.Hidden >= len(d.Values) {
		return 0, false
	}
	return d.Values[d.Hidden], true
}

// Count returns the number of values in the primary dataset.
func (d Dataset) Count() int {
	return len(d.Values)
}

// Sum returns the sum of the primary dataset at value precision.
func (d Dataset) Sum() float64 {
	return SumOf(d.Rule(), d.Values)
}

// SecondMean returns the mean of set B at mean precision.
func (d Dataset) SecondMean() float64 {
	return MeanOf(d.Rule(), d.Second)
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	d.Values = slices.Clone(d.Values)
	d.Second = slices.Clone(d.Second)
	return d
}

// SumOf adds values in integer ticks so the result carries no float drift.
func SumOf(r units.Rule, values []float64) float64 {
	var t int64
	for _, v := range values {
		t += r.Ticks(v)
	}
	return r.FromTicks(t)
}

// MeanOf returns the mean of values rounded to mean precision.
func MeanOf(r units.Rule, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return r.RoundMean(SumOf(r, values) / float64(len(values)))
}
