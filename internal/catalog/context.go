package catalog

import (
	"fmt"
	"slices"
)

// Variation identifies the kind of arithmetic-mean question being asked.
type Variation string

const (
	VariationCalculate    Variation = "calculate"     // mean of a full dataset
	VariationMissingValue Variation = "missing_value" // given mean and n-1 values, find the missing one
	VariationCompare      Variation = "compare"       // compare the means of two datasets
	VariationMissingCount Variation = "missing_count" // given mean and sum, find how many values
)

// AllVariations returns every variation in display order.
func AllVariations() []Variation {
	return []Variation{
		VariationCalculate,
		VariationMissingValue,
		VariationCompare,
		VariationMissingCount,
	}
}

// ParseVariation converts a string to a Variation.
func ParseVariation(s string) (Variation, error) {
	v := Variation(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown variation %q", s)
	}
	return v, nil
}

// Valid reports whether v is one of the known variations.
func (v Variation) Valid() bool {
	return slices.Contains(AllVariations(), v)
}

// DisplayName returns a human-readable name for a variation.
func (v Variation) DisplayName() string {
	switch v {
	case VariationCalculate:
		return "Calculate Mean"
	case VariationMissingValue:
		return "Find Missing Value"
	case VariationCompare:
		return "Compare Means"
	case VariationMissingCount:
		return "Find Number of Values"
	default:
		return string(v)
	}
}

// Level is the amount of storytelling wrapped around the numeric prompt.
type Level string

const (
	LevelMinimal  Level = "minimal"  // one sentence + data + instruction
	LevelStandard Level = "standard" // minimal + scenario framing
	LevelRich     Level = "rich"     // standard + backstory
)

// AllLevels returns the narrative levels from least to most detailed.
func AllLevels() []Level {
	return []Level{LevelMinimal, LevelStandard, LevelRich}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown narrative level %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return slices.Contains(AllLevels(), l)
}

// ContextDefinition describes one real-world scenario questions can be set in.
// Definitions are immutable once loaded into a Catalog.
type ContextDefinition struct {
	ID          string
	Name        string
	Category    string
	Description string

	// ValueMin and ValueMax bound every synthesized datum.
	ValueMin float64
	ValueMax float64

	// Unit is the display unit, e.g. "$", "bpm", "MB".
	Unit string

	// DataLabel names the data in prose, e.g. "daily tips".
	DataLabel string

	// Variations is the set of variations this context supports.
	Variations []Variation

	// Templates holds one independently authored template per level.
	Templates map[Level]string
}

// Supports reports whether the context is compatible with v.
func (d ContextDefinition) Supports(v Variation) bool {
	return slices.Contains(d.Variations, v)
}

// Template returns the narrative template for level, if present.
func (d ContextDefinition) Template(level Level) (string, bool) {
	t, ok := d.Templates[level]
	if !ok || t == "" {
		return "", false
	}
	return t, true
}
