// Package llm talks to hosted language models for the optional coach.
// Providers sit behind one interface and are wrapped as
// caller → retry → logging → provider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a completion for a Request.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is one completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for JSON output matching the schema. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	Name        string // kebab-case, e.g. "coach-feedback"
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type (
	purposeKey   struct{}
	challengeKey struct{}
)

// Request purposes recorded with each logged call.
const (
	PurposeCoach   = "coach"
	PurposeUnknown = "unknown"
)

// WithPurpose labels the requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// WithChallenge tags the requests made with ctx with a challenge ID.
func WithChallenge(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, challengeKey{}, id)
}

// ChallengeFrom returns the ID set by WithChallenge, or "".
func ChallengeFrom(ctx context.Context) string {
	id, _ := ctx.Value(challengeKey{}).(string)
	return id
}
