package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// Attempt sources.
const (
	SourceWeb      = "web"
	SourceAPI      = "api"
	SourceTerminal = "tui"
	SourceCLI      = "cli"
)

// AttemptData is a scored quiz submission to record.
type AttemptData struct {
	BankTitle string
	Source    string // one of the Source constants
	Score     int
	Total     int
	Responses map[string][]string // group name -> submitted values
}

// Attempt is a recorded quiz submission.
type Attempt struct {
	ID          string
	Sequence    int64
	SubmittedAt time.Time
	AttemptData
}

// AttemptRepo records and lists quiz attempts.
type AttemptRepo interface {
	// AppendAttempt stores a new attempt and returns its ID.
	AppendAttempt(ctx context.Context, data AttemptData) (string, error)

	// RecentAttempts returns attempts newest first.
	RecentAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// LLMModelUsage aggregates LLM calls for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose returns token totals grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel returns token totals grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
