package llm

import "context"

type purposeKey struct{}

// Request purposes recorded with LLM events.
const (
	PurposeBankGen = "bank-gen"
	PurposeUnknown = "unknown"
)

// WithPurpose labels LLM requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
