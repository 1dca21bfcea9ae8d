package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit       int       // max results (0 = unlimited)
	ChallengeID string    // only events for this challenge
	Purpose     string    // only LLM events with this purpose
	From        time.Time // timestamp >= From
}

// AttemptEventData captures one judged submission.
type AttemptEventData struct {
	ChallengeID string
	Attempt     int
	Passed      bool
	Unverified  bool
	Message     string
}

// AttemptEvent is a stored AttemptEventData.
type AttemptEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// CompletionEventData captures a scored challenge completion.
type CompletionEventData struct {
	ChallengeID string
	Score       int
	HintsUsed   int
	Attempts    int
	Elapsed     time.Duration
}

// CompletionEvent is a stored CompletionEventData.
type CompletionEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	CompletionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	ChallengeID  string // challenge under review, "" when unknown
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests by challenge or model.
type LLMUsage struct {
	ChallengeID  string
	Model        string
	Failures     int
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to gameplay and LLM events.
type EventRepo interface {
	// AppendAttempt records a judged submission.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendCompletion records a completed challenge and its score.
	AppendCompletion(ctx context.Context, data CompletionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAttempts returns attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)

	// QueryCompletions returns completions, newest first.
	QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionEvent, error)

	// QueryLLMEvents returns LLM requests, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM request, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByChallenge aggregates LLM requests per reviewed challenge.
	LLMUsageByChallenge(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM requests per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
