package bankgen

// Config controls a Generator.
type Config struct {
	// Validators run in order on every question; the first failure wins.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps the prompts listed for deduplication.
	MaxPriorQuestions int

	// MaxAttempts bounds regeneration of a question that fails a
	// retryable validator.
	MaxAttempts int
}

// DefaultConfig returns the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:         512,
		Temperature:       0.7,
		MaxPriorQuestions: 20,
		MaxAttempts:       3,
	}
}
