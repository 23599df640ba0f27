package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
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

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one analysis including retries. Default: 90s, answers
	// are long-form text.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-sonnet"
	BaseURL string // Optional, for proxies.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
	// Headers are added to every request.
	Headers map[string]string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-sonnet"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// EnvProvider selects the provider explicitly.
const EnvProvider = "LSQ_LLM_PROVIDER"

// envBindings are the LSQ_* variables read by ConfigFromEnv. Empty values
// are ignored; unparsable numbers and durations keep the default.
var envBindings = []struct {
	key string
	set func(c *Config, v string)
}{
	{EnvProvider, func(c *Config, v string) { c.Provider = v }},
	{"LSQ_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"LSQ_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"LSQ_ANTHROPIC_BASE_URL", func(c *Config, v string) { c.Anthropic.BaseURL = v }},
	{"LSQ_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"LSQ_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"LSQ_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"LSQ_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"LSQ_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"LSQ_GEMINI_BASE_URL", func(c *Config, v string) { c.Gemini.BaseURL = v }},
	{"LSQ_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"LSQ_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
	{"LSQ_LLM_TIMEOUT", func(c *Config, v string) {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}},
	{"LSQ_LLM_MAX_ATTEMPTS", func(c *Config, v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retry.MaxAttempts = n
		}
	}},
}

// ConfigFromEnv builds a Config from LSQ_* environment variables on top of
// DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, b := range envBindings {
		if v := os.Getenv(b.key); v != "" {
			b.set(&cfg, v)
		}
	}
	return cfg
}

// ResolveConfig returns the explicit LSQ_* configuration when a provider
// is selected or its key is set, and otherwise falls back to DiscoverConfig.
// ok is false when no provider could be configured.
func ResolveConfig() (cfg Config, ok bool) {
	cfg = ConfigFromEnv()
	if os.Getenv(EnvProvider) != "" || cfg.Validate() == nil {
		return cfg, true
	}
	if discovered, found := DiscoverConfig(); found {
		discovered.Timeout = cfg.Timeout
		discovered.Retry = cfg.Retry
		return discovered, true
	}
	return cfg, false
}

// wellKnownKeys are the vendors' own API key variables, in discovery order.
var wellKnownKeys = []struct {
	env      string
	provider string
	set      func(c *Config, key string)
}{
	{"GEMINI_API_KEY", ProviderGemini, func(c *Config, k string) { c.Gemini.APIKey = k }},
	{"OPENAI_API_KEY", ProviderOpenAI, func(c *Config, k string) { c.OpenAI.APIKey = k }},
	{"ANTHROPIC_API_KEY", ProviderAnthropic, func(c *Config, k string) { c.Anthropic.APIKey = k }},
	{"OPENROUTER_API_KEY", ProviderOpenRouter, func(c *Config, k string) { c.OpenRouter.APIKey = k }},
}

// DiscoverConfig returns a Config for the first vendor API key found in the
// environment (Gemini, OpenAI, Anthropic, OpenRouter).
func DiscoverConfig() (Config, bool) {
	for _, k := range wellKnownKeys {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = k.provider
		k.set(&cfg, key)
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("LSQ_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

