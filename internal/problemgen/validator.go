package problemgen

import "fmt"

// Validator checks an assembled question for internal consistency.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "math-check", "data-check".
	Name() string

	// Validate checks the question and returns nil if it passes.
	// The validator receives the full GenerateInput for context (e.g. to
	// know whether steps were requested).
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
