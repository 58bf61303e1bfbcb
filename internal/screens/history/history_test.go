package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizbox/internal/store"
)

type fakeAttempts struct {
	rows []store.Attempt
	err  error
}

func (f *fakeAttempts) AppendAttempt(context.Context, store.AttemptData) (string, error) {
	return "", nil
}

func (f *fakeAttempts) RecentAttempts(_ context.Context, opts store.QueryOpts) ([]store.Attempt, error) {
	if opts.Limit != historyLimit {
		return nil, errors.New("unexpected limit")
	}
	return f.rows, f.err
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestViewListsAttempts(t *testing.T) {
	repo := &fakeAttempts{rows: []store.Attempt{
		{ID: "b", SubmittedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), AttemptData: store.AttemptData{
			BankTitle: "Quick Quiz", Source: store.SourceWeb, Score: 3, Total: 4,
			Responses: map[string][]string{"question1": {"Banana", "Apple"}, "question0": {"2024"}},
		}},
		{ID: "a", SubmittedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), AttemptData: store.AttemptData{
			BankTitle: "Quick Quiz", Source: store.SourceTerminal, Score: 1, Total: 4,
		}},
	}}
	s := New(repo)
	load(t, s)

	out := ansi.Strip(s.View(100, 30))
	if !strings.Contains(out, "3/4") || !strings.Contains(out, "1/4") {
		t.Fatalf("view missing scores:\n%s", out)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	out = ansi.Strip(s.View(100, 30))
	first, second := strings.Index(out, "question0: 2024"), strings.Index(out, "question1: Banana, Apple")
	if first < 0 || second < first {
		t.Fatalf("expanded answers not listed in order:\n%s", out)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "No answers given") {
		t.Fatal("expected empty answers note")
	}
}

func TestViewEmptyAndError(t *testing.T) {
	s := New(&fakeAttempts{})
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Fatal("expected loading state")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 20), "No attempts yet") {
		t.Fatal("expected empty state")
	}

	s = New(&fakeAttempts{err: errors.New("db closed")})
	load(t, s)
	if !strings.Contains(s.View(80, 20), "db closed") {
		t.Fatal("expected error")
	}
}
