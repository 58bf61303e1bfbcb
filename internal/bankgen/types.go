package bankgen

import "github.com/abhisek/quizbox/internal/quiz"

// Input describes the bank to generate.
type Input struct {
	// Title of the resulting bank. Defaults to the topic.
	Title string

	// Topic is the subject questions are drawn from, e.g. "world capitals".
	Topic string

	// Count is the number of questions to produce.
	Count int

	// Kinds cycles through the question kinds to request. Empty means all
	// three kinds in order.
	Kinds []quiz.Kind

	// Existing prompts that must not be repeated, e.g. from a bank being
	// extended.
	Existing []string
}

// QuestionInput is the context for a single generated question.
type QuestionInput struct {
	Topic string
	Kind  quiz.Kind

	// PriorPrompts are the prompts already produced for this bank.
	PriorPrompts []string
}

// questionOutput is the model response before conversion.
type questionOutput struct {
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answers []string `json:"answers"`
	Accept  []string `json:"accept"`
}
