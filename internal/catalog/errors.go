package catalog

import (
	"fmt"
	"math"
)

// ErrDataFormat indicates a malformed catalog source. Row is 1-based and
// counts data rows only; zero means the problem is not tied to a row.
type ErrDataFormat struct {
	Row    int
	Column string
	Err    error
}

func (e *ErrDataFormat) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("catalog data format: row %d, column %s: %v", e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("catalog data format: row %d: %v", e.Row, e.Err)
	default:
		return fmt.Sprintf("catalog data format: %v", e.Err)
	}
}

func (e *ErrDataFormat) Unwrap() error { return e.Err }

// ErrNotFound indicates an unknown context id.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("context %q not found", e.ID)
}

// ErrNoCompatibleContext indicates no context supports the requested variation.
type ErrNoCompatibleContext struct {
	Variation Variation
}

func (e *ErrNoCompatibleContext) Error() string {
	return fmt.Sprintf("no context supports variation %q", e.Variation)
}

// ErrInvalidRange indicates malformed numeric bounds.
type ErrInvalidRange struct {
	Min    float64
	Max    float64
	Reason string
}

func (e *ErrInvalidRange) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "min must be less than max"
	}
	return fmt.Sprintf("invalid value range [%g, %g]: %s", e.Min, e.Max, reason)
}

// MaxMagnitude bounds |ValueMin| and |ValueMax|. Within it, tick sums of a
// dataset and their mean arithmetic stay exact in float64.
const MaxMagnitude = 1e9

// CheckRange returns *ErrInvalidRange unless lo < hi and both bounds are
// finite and within MaxMagnitude.
func CheckRange(lo, hi float64) error {
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0):
		return &ErrInvalidRange{Min: lo, Max: hi, Reason: "bounds must be finite"}
	case math.Abs(lo) > MaxMagnitude || math.Abs(hi) > MaxMagnitude:
		return &ErrInvalidRange{Min: lo, Max: hi, Reason: fmt.Sprintf("bounds must lie within ±%g", MaxMagnitude)}
	case !(lo < hi):
		return &ErrInvalidRange{Min: lo, Max: hi}
	}
	return nil
}
