package problemgen

import (
	"fmt"

	"github.com/abhisek/mathctx/internal/catalog"
)

// ErrIncompatibleContext indicates an explicit context that does not support
// the requested variation.
type ErrIncompatibleContext struct {
	ContextID string
	Variation catalog.Variation
}

func (e *ErrIncompatibleContext) Error() string {
	return fmt.Sprintf("context %q does not support variation %q", e.ContextID, e.Variation)
}

// ErrInvalidArgument indicates an out-of-range request field.
type ErrInvalidArgument struct {
	Field  string
	Value  any
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
