// Package scoring grades the answers on a quiz surface.
package scoring

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/surface"
)

// Outcome is the grading of one question.
type Outcome struct {
	Index    int
	Kind     quiz.Kind
	Answered bool
	Correct  bool
	Response []string
}

// Result is the grading of a whole surface.
type Result struct {
	Score    int
	Total    int
	Outcomes []Outcome
}

// Summary returns the line written to the results surface.
func (r Result) Summary() string {
	return Summary(r.Score, r.Total)
}

// Percentage returns the share of correct answers in the range 0 to 100.
func (r Result) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// Performance returns a short remark for the percentage band the score
// falls into.
func (r Result) Performance() string {
	p := r.Percentage()
	switch {
	case p >= 80:
		return "Excellent performance!"
	case p >= 60:
		return "Good job!"
	case p >= 40:
		return "Not bad! Keep practicing."
	default:
		return "Keep learning! You'll do better next time."
	}
}

// Responses returns the answered groups keyed by group name.
func (r Result) Responses() map[string][]string {
	out := make(map[string][]string, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Answered {
			out[quiz.GroupID(o.Index)] = o.Response
		}
	}
	return out
}

// Summary formats a score line.
func Summary(score, total int) string {
	return fmt.Sprintf("Your score is %d out of %d", score, total)
}

// Scorer grades a quiz surface against a bank and reports to a results
// surface.
type Scorer struct {
	bank    quiz.Bank
	quiz    *surface.Surface
	results *surface.Results
}

// New returns a Scorer. results may be nil when only Score is used.
func New(bank quiz.Bank, quizSurface *surface.Surface, results *surface.Results) *Scorer {
	return &Scorer{bank: bank, quiz: quizSurface, results: results}
}

// Score grades the current selections without changing anything. A
// question whose control group is missing from the surface counts as
// unanswered and incorrect.
func (s *Scorer) Score() Result {
	res := Result{Total: s.bank.Len()}
	for i, q := range s.bank.Questions() {
		g := &grader{surface: s.quiz, name: quiz.GroupID(i)}
		q.Accept(g)
		g.out.Index = i
		g.out.Kind = q.Kind()
		if g.out.Correct {
			res.Score++
		}
		res.Outcomes = append(res.Outcomes, g.out)
	}
	return res
}

// Submit grades the surface and writes the summary to the results surface.
func (s *Scorer) Submit() Result {
	res := s.Score()
	if s.results != nil {
		s.results.SetText(res.Summary())
	}
	return res
}

type grader struct {
	surface *surface.Surface
	name    string
	out     Outcome
}

func (g *grader) VisitSingleChoice(q quiz.SingleChoice) {
	v, ok := g.surface.Checked(g.name)
	if !ok {
		return
	}
	g.out.Answered = true
	g.out.Response = []string{v}
	g.out.Correct = v == q.Correct
}

func (g *grader) VisitMultiChoice(q quiz.MultiChoice) {
	selected := g.surface.CheckedValues(g.name)
	g.out.Answered = len(selected) > 0
	g.out.Response = selected
	g.out.Correct = sameSet(selected, q.Correct)
}

func (g *grader) VisitFillBlank(q quiz.FillBlank) {
	v, ok := g.surface.Text(g.name)
	if !ok {
		return
	}
	g.out.Answered = strings.TrimSpace(v) != ""
	g.out.Response = []string{v}
	g.out.Correct = MatchText(v, q.Correct, q.Alternates...)
}

// NormalizeText trims surrounding whitespace and lowercases s.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchText reports whether input matches correct, or one of the
// alternates, after both sides are normalized with NormalizeText.
func MatchText(input, correct string, alternates ...string) bool {
	got := NormalizeText(input)
	if got == NormalizeText(correct) {
		return true
	}
	for _, alt := range alternates {
		if got == NormalizeText(alt) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sameSet(a, b []string) bool {
	sa, sb := toSet(a), toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for v := range sa {
		if _, ok := sb[v]; !ok {
			return false
		}
	}
	return true
}
