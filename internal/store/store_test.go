package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", s.Driver())
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpenFile.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizbox.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestWithConnPragmas(t *testing.T) {
	if got := withConnPragmas("/tmp/q.db"); !strings.HasPrefix(got, "/tmp/q.db?_pragma=foreign_keys(1)") {
		t.Errorf("dsn = %q", got)
	}
	if got := withConnPragmas("file:x?mode=memory"); !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Errorf("dsn = %q", got)
	}
}

func TestOpenDriver_Unsupported(t *testing.T) {
	if _, err := OpenDriver(context.Background(), "mysql", ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestAttemptAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.AppendAttempt(ctx, AttemptData{
			BankTitle: "Quick Quiz",
			Source:    "web",
			Score:     i,
			Total:     4,
			Responses: map[string][]string{"question0": {"2024"}},
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.RecentAttempts(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Score != 2 || got[1].Score != 1 {
		t.Errorf("scores = %d,%d, want newest first 2,1", got[0].Score, got[1].Score)
	}
	if got[0].Responses["question0"][0] != "2024" {
		t.Errorf("responses = %v", got[0].Responses)
	}
	if _, err := uuid.Parse(got[0].ID); err != nil {
		t.Errorf("attempt id %q is not a uuid: %v", got[0].ID, err)
	}
	if got[0].SubmittedAt.IsZero() {
		t.Error("expected submitted time")
	}

	all, err := repo.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestAttemptNilResponses(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.AttemptRepo().AppendAttempt(ctx, AttemptData{Source: "cli", Total: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.AttemptRepo().RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Responses == nil {
		t.Fatalf("expected one attempt with empty responses, got %+v", got)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "bank-gen",
		InputTokens:  10,
		OutputTokens: 5,
		LatencyMs:    42,
		Success:      true,
		RequestBody:  "[user]\nhello",
		ResponseBody: `{"ok":true}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "bank-gen",
		Success:      false,
		ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Success || events[0].ErrorMessage != "boom" {
		t.Errorf("newest event = %+v, want failed event first", events[0])
	}

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || !e.Success || e.LatencyMs != 42 || e.ResponseBody != `{"ok":true}` {
		t.Errorf("unexpected event %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock"}); err != nil {
		t.Fatalf("append event: %v", err)
	}
	if _, err := s.AttemptRepo().AppendAttempt(ctx, AttemptData{Source: "cli", Total: 1}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	events, _ := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	attempts, _ := s.AttemptRepo().RecentAttempts(ctx, QueryOpts{})
	if events[0].Sequence != 1 || attempts[0].Sequence != 2 {
		t.Errorf("sequences = %d,%d, want 1,2", events[0].Sequence, attempts[0].Sequence)
	}
}

func TestBuilderPlaceholdersFollowDialect(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{dialect.SQLite, "WHERE `id` = ?"},
		{dialect.Postgres, `WHERE "id" = $1`},
	}
	for _, tt := range tests {
		s := &Store{drv: entsql.OpenDB(tt.dialect, nil)}
		b := s.builder()
		query, args := b.Select(llmEventColumns...).
			From(b.Table(llmEventsTable.Name)).
			Where(entsql.EQ("id", 7)).
			Query()
		if !strings.Contains(query, tt.want) {
			t.Errorf("%s query = %q, want it to contain %q", tt.dialect, query, tt.want)
		}
		if len(args) != 1 || args[0] != 7 {
			t.Errorf("%s args = %v", tt.dialect, args)
		}
	}
}

func TestReopenKeepsRowsAndSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizbox.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.AttemptRepo().AppendAttempt(ctx, AttemptData{Source: "cli", Total: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.AttemptRepo().AppendAttempt(ctx, AttemptData{Source: "cli", Total: 1}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}

	got, err := s.AttemptRepo().RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].Sequence != 2 || got[1].Sequence != 1 {
		t.Fatalf("attempts after reopen = %+v", got)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "q.db")
	t.Setenv("QUIZBOX_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Model: "a", Purpose: "bank-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Model: "a", Purpose: "bank-gen", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Model: "b", Purpose: "unknown", InputTokens: 1, OutputTokens: 1, LatencyMs: 10, Success: false},
	} {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	if got := byPurpose[0]; got.Purpose != "bank-gen" || got.Calls != 2 || got.InputTokens != 30 || got.AvgLatencyMs != 200 {
		t.Errorf("bank-gen usage = %+v", got)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Model != "a" || byModel[0].OutputTokens != 10 {
		t.Errorf("model usage = %+v, want only successful calls", byModel)
	}
}
