// Package coach explains failed submissions. Rule-based advice is always
// available; a language model adds a personalised review when configured.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"

	"github.com/abhisek/codearena/internal/llm"
)

// ErrNoProvider is returned by Review when no language model is configured.
var ErrNoProvider = errors.New("coach: no LLM provider configured")

// Feedback is advice for the player.
type Feedback struct {
	Kind     Kind
	Source   string // rule name, or "llm"
	Feedback string
	NextStep string
}

// Config tunes LLM requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 300, Temperature: 0.3}
}

// Service combines the rules with an optional provider.
type Service struct {
	rules    []Rule
	provider llm.Provider
	cfg      Config
}

// NewService creates a coach. provider may be nil.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{rules: DefaultRules(), provider: provider, cfg: cfg}
}

// HasLLM reports whether Review can reach a model.
func (s *Service) HasLLM() bool { return s.provider != nil }

// Advise returns rule-based feedback immediately.
func (s *Service) Advise(in *Input) Feedback {
	kind, rule := RunRules(s.rules, in)
	a := advice[kind]
	return Feedback{Kind: kind, Source: rule, Feedback: a[0], NextStep: a[1]}
}

type reviewOutput struct {
	Feedback string `json:"feedback"`
	NextStep string `json:"next_step"`
}

// Review asks the model to look at the submission. It never gives the
// answer away; the prompt asks for a nudge only.
func (s *Service) Review(ctx context.Context, in *Input) (Feedback, error) {
	if s.provider == nil {
		return Feedback{}, ErrNoProvider
	}
	ctx = llm.WithChallenge(llm.WithPurpose(ctx, llm.PurposeCoach), in.ChallengeID)

	var msg bytes.Buffer
	if err := reviewTemplate.Execute(&msg, in); err != nil {
		return Feedback{}, fmt.Errorf("build coach prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg.String()}},
		Schema:      ReviewSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Feedback{}, fmt.Errorf("coach review failed: %w", err)
	}

	fb, err := ParseReview(resp.Content)
	if err != nil {
		return Feedback{}, err
	}
	fb.Kind, _ = RunRules(s.rules, in)
	return fb, nil
}

// ParseReview decodes a model response that follows ReviewSchema.
func ParseReview(body []byte) (Feedback, error) {
	var out reviewOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return Feedback{}, fmt.Errorf("parse coach response: %w", err)
	}
	return Feedback{Source: "llm", Feedback: out.Feedback, NextStep: out.NextStep}, nil
}

const systemPrompt = `You are a patient programming coach in a practice game. The player writes Starlark, a Python dialect without classes, exceptions, f-strings or imports.

Rules:
- Point at the single most important problem in the player's code.
- Never write the corrected function or a complete solution.
- feedback: at most two sentences about what is wrong.
- next_step: one concrete thing to try next.`

var reviewTemplate = template.Must(template.New("review").Parse(`Challenge: {{.Title}}
{{.Description}}

Attempt {{.Attempts}} was rejected with:
{{.Message}}

Player's code:
{{.Submission}}
`))

// ReviewSchema is the structured output the model must return.
var ReviewSchema = &llm.Schema{
	Name:        "coach-review",
	Description: "A short hint about a failed coding submission",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "What is wrong, in at most two sentences",
			},
			"next_step": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One concrete thing the player should try next",
			},
		},
		"required":             []any{"feedback", "next_step"},
		"additionalProperties": false,
	},
}
