// Package render turns a question bank into a quiz surface.
package render

import (
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/surface"
)

// Renderer builds quiz surfaces from a bank.
type Renderer struct {
	bank quiz.Bank
}

// New returns a Renderer for bank.
func New(bank quiz.Bank) *Renderer {
	return &Renderer{bank: bank}
}

// Build replaces the contents of s with one block per question, in bank
// order. The controls of question i are all named quiz.GroupID(i). Any
// selections made on a previous build are discarded.
func (r *Renderer) Build(s *surface.Surface) {
	s.Reset()
	for i, q := range r.bank.Questions() {
		b := &blockBuilder{name: quiz.GroupID(i)}
		q.Accept(b)
		s.AddBlock(surface.Block{
			Index:    i,
			Prompt:   q.Text(),
			Controls: b.controls,
		})
	}
}

type blockBuilder struct {
	name     string
	controls []*surface.Control
}

func (b *blockBuilder) VisitSingleChoice(q quiz.SingleChoice) {
	b.options(surface.Radio, q.Options)
}

func (b *blockBuilder) VisitMultiChoice(q quiz.MultiChoice) {
	b.options(surface.Checkbox, q.Options)
}

func (b *blockBuilder) VisitFillBlank(quiz.FillBlank) {
	b.controls = []*surface.Control{{Kind: surface.Text, Name: b.name}}
}

func (b *blockBuilder) options(kind surface.ControlKind, options []string) {
	b.controls = make([]*surface.Control, len(options))
	for i, opt := range options {
		b.controls[i] = &surface.Control{Kind: kind, Name: b.name, Value: opt}
	}
}
