package bankgen

import (
	"fmt"

	"github.com/abhisek/quizbox/internal/quiz"
)

// Validator checks a generated question before it joins the bank.
type Validator interface {
	Name() string
	Validate(q quiz.Question, input QuestionInput) *ValidationError
}

// ValidationError describes a rejected question.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // regenerating may fix it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
