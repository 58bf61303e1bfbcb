package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	quizscreen "github.com/abhisek/quizbox/internal/screens/quiz"
)

func TestStartPushesQuiz(t *testing.T) {
	h := New(quiz.DefaultBank(), nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T", cmd())
	}
	if _, ok := msg.Screen.(*quizscreen.QuizScreen); !ok {
		t.Fatalf("pushed %T", msg.Screen)
	}
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	h := New(quiz.DefaultBank(), nil)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != 2 {
		t.Fatalf("selected = %d, want Quit", h.menu.Selected)
	}
}

func TestViewShowsBank(t *testing.T) {
	out := ansi.Strip(New(quiz.DefaultBank(), nil).View(80, 24))
	for _, want := range []string{"QUICK QUIZ", "4 questions", "Start quiz"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
