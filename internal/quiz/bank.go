package quiz

import "slices"

// DefaultTitle is the title of the built-in bank.
const DefaultTitle = "Quick Quiz"

// Bank is an ordered, read-only list of questions. The zero value is an
// empty bank.
type Bank struct {
	title     string
	questions []Question
}

// NewBank returns a bank holding copies of the given questions.
func NewBank(title string, questions ...Question) Bank {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = cloneQuestion(q)
	}
	return Bank{title: title, questions: out}
}

// Title returns the bank's display title.
func (b Bank) Title() string { return b.title }

// Len returns the number of questions.
func (b Bank) Len() int { return len(b.questions) }

// At returns a copy of the question at index i. It panics when i is out
// of range.
func (b Bank) At(i int) Question { return cloneQuestion(b.questions[i]) }

// Questions returns a copy of the question list.
func (b Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// cloneQuestion copies the slices held by q so callers cannot mutate a bank
// through a question they passed in or got back.
func cloneQuestion(q Question) Question {
	c := &cloner{}
	q.Accept(c)
	return c.out
}

type cloner struct{ out Question }

func (c *cloner) VisitSingleChoice(q SingleChoice) {
	q.Options = slices.Clone(q.Options)
	c.out = q
}

func (c *cloner) VisitMultiChoice(q MultiChoice) {
	q.Options = slices.Clone(q.Options)
	q.Correct = slices.Clone(q.Correct)
	c.out = q
}

func (c *cloner) VisitFillBlank(q FillBlank) {
	q.Alternates = slices.Clone(q.Alternates)
	c.out = q
}

// DefaultBank returns the built-in four-question bank.
func DefaultBank() Bank {
	return NewBank(DefaultTitle,
		SingleChoice{
			Prompt:  "In which year did the movie Kalki 2898 AD. release?",
			Options: []string{"2023", "2025", "2024", "2022"},
			Correct: "2024",
		},
		MultiChoice{
			Prompt:  "Select all fruits:",
			Options: []string{"Carrot", "Banana", "Apple", "Broccoli"},
			Correct: []string{"Banana", "Apple"},
		},
		FillBlank{
			Prompt:  "Fill in the blank: Water freezes at _____ degrees Celsius.",
			Correct: "zero",
		},
		SingleChoice{
			Prompt:  "Telangana film awards are called?",
			Options: []string{"Nandi Filmfare", "Dadasaheb Phaike", "Gaddar Filmfare Awards", "Best Filmfare"},
			Correct: "Gaddar Filmfare Awards",
		},
	)
}
