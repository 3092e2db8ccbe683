package llm

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

// Provider names accepted in MATHCTX_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// ProviderNames lists the providers that need credentials.
var ProviderNames = []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// ProviderConfig holds one provider's credentials and model.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional endpoint override
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the active provider by name.
	Provider string

	// Providers is keyed by provider name.
	Providers map[string]ProviderConfig

	Retry RetryConfig

	// Timeout bounds a whole Generate call, retries included.
	Timeout time.Duration
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
		Provider: ProviderAnthropic,
		Providers: map[string]ProviderConfig{
			ProviderAnthropic:  {Model: "claude-haiku"},
			ProviderOpenAI:     {Model: "gpt-4o-mini"},
			ProviderGemini:     {Model: "gemini-flash"},
			ProviderOpenRouter: {Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from MATHCTX_ environment variables,
// falling back to defaults for unset values:
//
//	MATHCTX_LLM_PROVIDER
//	MATHCTX_<PROVIDER>_API_KEY
//	MATHCTX_<PROVIDER>_MODEL
//	MATHCTX_<PROVIDER>_BASE_URL
func ConfigFromEnv() Config {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) Config {
	cfg := DefaultConfig()
	if p := getenv("MATHCTX_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	for _, name := range ProviderNames {
		pc := cfg.Providers[name]
		prefix := "MATHCTX_" + strings.ToUpper(name) + "_"
		if k := getenv(prefix + "API_KEY"); k != "" {
			pc.APIKey = k
		}
		if m := getenv(prefix + "MODEL"); m != "" {
			pc.Model = m
		}
		if u := getenv(prefix + "BASE_URL"); u != "" {
			pc.BaseURL = u
		}
		cfg.Providers[name] = pc
	}
	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// and selects the first provider whose key is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
		if k := os.Getenv(strings.ToUpper(name) + "_API_KEY"); k != "" {
			pc := cfg.Providers[name]
			pc.APIKey = k
			cfg.Providers[name] = pc
			cfg.Provider = name
			return cfg, true
		}
	}
	return Config{}, false
}

// Selected returns the configuration of the active provider.
func (c Config) Selected() ProviderConfig {
	return c.Providers[c.Provider]
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch {
	case c.Provider == ProviderMock:
		return nil
	case !slices.Contains(ProviderNames, c.Provider):
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	case c.Selected().APIKey == "":
		return fmt.Errorf("MATHCTX_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
