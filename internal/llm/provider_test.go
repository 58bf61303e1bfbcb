package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), UserPrompt("", "first", nil, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.InputTokens != 10 {
		t.Fatalf("unexpected first response: %+v", first)
	}
	second, err := mock.Generate(context.Background(), UserPrompt("", "second", nil, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Fatalf("unexpected second content %s", second.Content)
	}
	if mock.CallCount() != 2 || mock.Calls[1].Messages[0].Content != "second" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"name":"x"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestUserPrompt(t *testing.T) {
	req := UserPrompt("sys", "hello", testSchema(), 256)
	if req.System != "sys" || req.MaxTokens != 256 || req.Schema == nil {
		t.Fatalf("unexpected request %+v", req)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != RoleUser {
		t.Fatalf("unexpected messages %+v", req.Messages)
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnknown {
		t.Fatalf("default purpose = %q", got)
	}
	ctx := WithPurpose(context.Background(), PurposeBankGen)
	if got := PurposeFrom(ctx); got != PurposeBankGen {
		t.Fatalf("purpose = %q", got)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("claude-haiku")
	if c == nil {
		t.Fatal("expected price for claude-haiku alias")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 6 {
		t.Fatalf("cost = %v, want 6", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("boom")
	var rl *ErrRateLimit
	if !errors.As(classifyStatus(429, base), &rl) {
		t.Fatal("429 should map to ErrRateLimit")
	}
	var auth *ErrAuth
	if !errors.As(classifyStatus(401, base), &auth) {
		t.Fatal("401 should map to ErrAuth")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(classifyStatus(503, base), &unavail) {
		t.Fatal("503 should map to ErrProviderUnavailable")
	}
	if !errors.Is(classifyStatus(503, base), base) {
		t.Fatal("classified error should wrap the original")
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kind":    map[string]any{"type": "string", "enum": []string{"single", "multi"}},
			"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"count":   map[string]any{"type": "integer"},
		},
		"required": []any{"kind", "options"},
	})
	if s.Type != "OBJECT" || len(s.Properties) != 3 {
		t.Fatalf("unexpected schema %+v", s)
	}
	if len(s.Properties["kind"].Enum) != 2 {
		t.Fatalf("enum = %v", s.Properties["kind"].Enum)
	}
	if s.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("items type = %s", s.Properties["options"].Items.Type)
	}
	if s.Properties["count"].Type != "INTEGER" {
		t.Fatalf("count type = %s", s.Properties["count"].Type)
	}
	if len(s.Required) != 2 {
		t.Fatalf("required = %v", s.Required)
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Fatalf("resolve = %q", got)
	}
	if got := resolveModel("gemini-2.5-pro", geminiModels); got != "gemini-2.5-pro" {
		t.Fatalf("pass-through = %q", got)
	}
}
