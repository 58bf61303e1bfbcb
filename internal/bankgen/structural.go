package bankgen

import (
	"fmt"

	"github.com/abhisek/quizbox/internal/quiz"
)

const (
	maxPromptLen = 300
	minOptions   = 2
	maxOptions   = 6
)

// StructuralValidator enforces the kind requested, size limits and the
// bank rules checked by quiz.Validate.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q quiz.Question, input QuestionInput) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if input.Kind != "" && q.Kind() != input.Kind {
		return fail("kind %q does not match requested %q", q.Kind(), input.Kind)
	}
	if len(q.Text()) > maxPromptLen {
		return fail("prompt exceeds %d characters", maxPromptLen)
	}
	if err := quiz.Validate(quiz.NewBank("", q)); err != nil {
		return fail("%v", err)
	}

	var options []string
	switch c := q.(type) {
	case quiz.SingleChoice:
		options = c.Options
	case quiz.MultiChoice:
		options = c.Options
	}
	if q.Kind() != quiz.KindFill && (len(options) < minOptions || len(options) > maxOptions) {
		return fail("expected %d to %d options, got %d", minOptions, maxOptions, len(options))
	}
	return nil
}

// DuplicateValidator rejects prompts already in the bank.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q quiz.Question, input QuestionInput) *ValidationError {
	key := promptKey(q.Text())
	for _, p := range input.PriorPrompts {
		if promptKey(p) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("prompt %q was already asked", q.Text()),
				Retryable: true,
			}
		}
	}
	return nil
}
