package quiz

import "fmt"

// Kind names a question variant. It is the value of the "type" field in
// bank files.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
	KindFill   Kind = "fill"
)

// Question is one entry of a Bank. The set of implementations is closed:
// SingleChoice, MultiChoice and FillBlank.
type Question interface {
	// Kind reports which variant this question is.
	Kind() Kind

	// Text returns the prompt shown to the user.
	Text() string

	// Accept calls the Visitor method matching the variant.
	Accept(v Visitor)

	sealed()
}

// Visitor has one method per Question variant. Code that must handle every
// variant implements Visitor instead of switching on the concrete type, so
// a new variant fails to compile until each visitor handles it.
type Visitor interface {
	VisitSingleChoice(q SingleChoice)
	VisitMultiChoice(q MultiChoice)
	VisitFillBlank(q FillBlank)
}

// SingleChoice asks the user to pick exactly one option.
type SingleChoice struct {
	Prompt  string
	Options []string
	Correct string
}

func (q SingleChoice) Kind() Kind       { return KindSingle }
func (q SingleChoice) Text() string     { return q.Prompt }
func (q SingleChoice) Accept(v Visitor) { v.VisitSingleChoice(q) }
func (q SingleChoice) sealed()          {}

// MultiChoice asks the user to toggle every correct option. There is no
// partial credit.
type MultiChoice struct {
	Prompt  string
	Options []string
	Correct []string
}

func (q MultiChoice) Kind() Kind       { return KindMulti }
func (q MultiChoice) Text() string     { return q.Prompt }
func (q MultiChoice) Accept(v Visitor) { v.VisitMultiChoice(q) }
func (q MultiChoice) sealed()          {}

// FillBlank asks the user to type a short answer. Alternates lists other
// spellings that also count as correct.
type FillBlank struct {
	Prompt     string
	Correct    string
	Alternates []string
}

func (q FillBlank) Kind() Kind       { return KindFill }
func (q FillBlank) Text() string     { return q.Prompt }
func (q FillBlank) Accept(v Visitor) { v.VisitFillBlank(q) }
func (q FillBlank) sealed()          {}

// GroupID returns the identifier of the control group that holds the answer
// to the question at index i.
func GroupID(i int) string {
	return fmt.Sprintf("question%d", i)
}
