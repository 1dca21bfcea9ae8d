package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is the per-provider part of Config. BaseURL is only
// honoured by the OpenAI-compatible providers.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns defaults with no credentials.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads CODEARENA_* variables. When CODEARENA_LLM_PROVIDER
// is unset the first vendor key found (GEMINI_API_KEY, OPENAI_API_KEY,
// ANTHROPIC_API_KEY, OPENROUTER_API_KEY) picks the provider. The second
// result is false when no provider could be determined.
func ConfigFromEnv() (Config, bool) {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) (Config, bool) {
	cfg := DefaultConfig()
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	type entry struct {
		name   string
		pc     *ProviderConfig
		vendor string
	}
	entries := []entry{
		{ProviderGemini, &cfg.Gemini, "GEMINI_API_KEY"},
		{ProviderOpenAI, &cfg.OpenAI, "OPENAI_API_KEY"},
		{ProviderAnthropic, &cfg.Anthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenRouter, &cfg.OpenRouter, "OPENROUTER_API_KEY"},
	}

	discovered := ""
	for _, e := range entries {
		prefix := "CODEARENA_" + envName(e.name) + "_"
		if k := get(prefix + "API_KEY"); k != "" {
			e.pc.APIKey = k
		} else if k := get(e.vendor); k != "" {
			e.pc.APIKey = k
		}
		if m := get(prefix + "MODEL"); m != "" {
			e.pc.Model = m
		}
		if u := get(prefix + "BASE_URL"); u != "" {
			e.pc.BaseURL = u
		}
		if discovered == "" && e.pc.APIKey != "" {
			discovered = e.name
		}
	}

	if t := get("CODEARENA_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if p := get("CODEARENA_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg, true
	}
	if discovered == "" {
		return cfg, false
	}
	cfg.Provider = discovered
	return cfg, true
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderGemini:
		return "GEMINI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	default:
		return "ANTHROPIC"
	}
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var pc ProviderConfig
	switch c.Provider {
	case ProviderAnthropic:
		pc = c.Anthropic
	case ProviderOpenAI:
		pc = c.OpenAI
	case ProviderGemini:
		pc = c.Gemini
	case ProviderOpenRouter:
		pc = c.OpenRouter
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("CODEARENA_%s_API_KEY is required for the %s provider", envName(c.Provider), c.Provider)
	}
	return nil
}
