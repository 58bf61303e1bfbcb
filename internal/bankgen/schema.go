package bankgen

import "github.com/abhisek/quizbox/internal/llm"

// QuestionSchema is the response format requested for every question.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single quiz question with its options and correct answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kind": map[string]any{
				"type":        "string",
				"enum":        []any{"single", "multi", "fill"},
				"description": "single: pick one option, multi: pick every correct option, fill: type the answer",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "The question shown to the player",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Between 3 and 5 distinct options for single and multi. Empty for fill.",
			},
			"answers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Correct answers copied exactly from options. One entry for single and fill, one or more for multi.",
			},
			"accept": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Alternative spellings accepted for fill questions. Empty otherwise.",
			},
		},
		"required":             []any{"kind", "prompt", "options", "answers", "accept"},
		"additionalProperties": false,
	},
}
