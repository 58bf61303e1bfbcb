// Package results shows a graded attempt.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/scoring"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ReplayMsg asks the quiz screen to rebuild its surface.
type ReplayMsg struct{}

// RecordedMsg reports the outcome of saving an attempt.
type RecordedMsg struct {
	ID  string
	Err error
}

// ResultsScreen shows the score line and a per-question breakdown.
type ResultsScreen struct {
	bank    quiz.Bank
	summary string
	result  scoring.Result
	saved   string
	saveErr string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen. summary is the text read back from the
// results surface.
func New(bank quiz.Bank, summary string, result scoring.Result) *ResultsScreen {
	return &ResultsScreen{bank: bank, summary: summary, result: result}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Retake"},
		{Key: "Enter", Description: "Back to quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		} else {
			s.saved = msg.ID
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, pop
		case "r":
			return s, tea.Sequence(pop, func() tea.Msg { return ReplayMsg{} })
		}
	}
	return s, nil
}

func pop() tea.Msg {
	return router.PopScreenMsg{}
}

func (s *ResultsScreen) View(width, height int) string {
	cw := min(width-4, 72)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title.Render(s.summary)))
	b.WriteString("\n\n")
	b.WriteString(center(components.NewProgressBar("", s.result.Percentage()/100, true, cw).View()))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Body.Render(s.result.Performance())))
	b.WriteString("\n\n")

	for _, o := range s.result.Outcomes {
		mark := theme.Incorrect.Render("✗")
		if o.Correct {
			mark = theme.Correct.Render("✓")
		}
		prompt := s.bank.At(o.Index).Text()
		answer := "no answer"
		if o.Answered {
			answer = strings.Join(o.Response, ", ")
		}
		line := fmt.Sprintf("%s %d. %s", mark, o.Index+1, truncate(prompt, cw-8))
		b.WriteString(center(lipgloss.NewStyle().Width(cw).Render(line)))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Width(cw).Render(theme.Hint.Render("     " + truncate(answer, cw-8)))))
		b.WriteString("\n")
	}

	switch {
	case s.saveErr != "":
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Render("Attempt not saved: " + s.saveErr)))
	case s.saved != "":
		b.WriteString("\n")
		b.WriteString(center(theme.Hint.Render("Attempt saved")))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
