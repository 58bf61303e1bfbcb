package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/scoring"
)

func sampleResult() scoring.Result {
	return scoring.Result{
		Score: 1,
		Total: 2,
		Outcomes: []scoring.Outcome{
			{Index: 0, Kind: quiz.KindSingle, Answered: true, Correct: true, Response: []string{"2024"}},
			{Index: 1, Kind: quiz.KindMulti},
		},
	}
}

func sampleBank() quiz.Bank {
	qs := quiz.DefaultBank().Questions()
	return quiz.NewBank("Sample", qs[0], qs[1])
}

func TestViewShowsSummaryAndBreakdown(t *testing.T) {
	s := New(sampleBank(), "Your score is 1 out of 2", sampleResult())
	out := ansi.Strip(s.View(100, 30))

	for _, want := range []string{"Your score is 1 out of 2", "Not bad", "✓ 1.", "✗ 2.", "no answer", "2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRecordedMsg(t *testing.T) {
	s := New(sampleBank(), "Your score is 1 out of 2", sampleResult())
	s.Update(RecordedMsg{ID: "abc"})
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Attempt saved") {
		t.Fatal("expected saved notice")
	}
}

func TestEnterPops(t *testing.T) {
	s := New(sampleBank(), "", sampleResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestRetakeReturnsCommand(t *testing.T) {
	s := New(sampleBank(), "", sampleResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a sequence command")
	}
}
