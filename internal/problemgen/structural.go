package problemgen

import (
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
)

// MaxTextLength caps the composed question text.
const MaxTextLength = catalog.MaxTextLength

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question_text is empty")
	}
	if len(q.Text) > MaxTextLength {
		return fail("question_text is too long")
	}
	if strings.ContainsAny(q.Text, "{}") {
		return fail("question_text has an unexpanded placeholder")
	}
	if q.Answer == "" {
		return fail("answer is empty")
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fail("difficulty must be between 1 and 5")
	}
	if q.TotalMarks < 1 {
		return fail("total_marks must be positive")
	}
	if !q.Given.Variation.Valid() || !q.Given.Level.Valid() {
		return fail("given_data has an unknown variation or level")
	}
	if input.OmitSteps && len(q.Steps) > 0 {
		return fail("solution_steps present although steps were not requested")
	}
	if !input.OmitSteps && len(q.Steps) == 0 {
		return fail("solution_steps are empty")
	}
	for _, s := range q.Steps {
		if strings.TrimSpace(s) == "" {
			return fail("solution_steps contains an empty step")
		}
	}
	return nil
}
