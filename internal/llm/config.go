package llm

import (
	"fmt"
	"os"
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

// Credentials is the per-provider connection setting.
type Credentials struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible providers only
}

// Config selects and configures a provider.
type Config struct {
	Provider  string
	Providers map[string]Credentials
	Retry     RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// defaultModels are the friendly model names used when none is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
}

// discoveryOrder lists providers probed by DiscoverConfig.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// DefaultConfig returns the anthropic provider with default models and
// retry settings.
func DefaultConfig() Config {
	cfg := Config{
		Provider:  ProviderAnthropic,
		Providers: make(map[string]Credentials, len(defaultModels)),
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
	for name, model := range defaultModels {
		cfg.Providers[name] = Credentials{Model: model}
	}
	return cfg
}

// Selected returns the credentials of the configured provider.
func (c Config) Selected() Credentials {
	return c.Providers[c.Provider]
}

// ConfigFromEnv reads QUIZBOX_LLM_PROVIDER, QUIZBOX_LLM_TIMEOUT and the
// QUIZBOX_<PROVIDER>_API_KEY / _MODEL / _BASE_URL variables. When no
// provider is named and none of the QUIZBOX keys are set, the standard
// vendor key variables are probed.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	explicit := false
	for name := range defaultModels {
		prefix := "QUIZBOX_" + strings.ToUpper(name) + "_"
		cred := cfg.Providers[name]
		if k := os.Getenv(prefix + "API_KEY"); k != "" {
			cred.APIKey = k
			explicit = true
		}
		if m := os.Getenv(prefix + "MODEL"); m != "" {
			cred.Model = m
		}
		if u := os.Getenv(prefix + "BASE_URL"); u != "" {
			cred.BaseURL = u
		}
		cfg.Providers[name] = cred
	}

	if d, err := time.ParseDuration(os.Getenv("QUIZBOX_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	if p := os.Getenv("QUIZBOX_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg
	}
	if explicit {
		for _, name := range discoveryOrder {
			if cfg.Providers[name].APIKey != "" {
				cfg.Provider = name
				return cfg
			}
		}
	}
	if found, ok := DiscoverConfig(); ok {
		sel := found.Selected()
		sel.Model = cfg.Providers[found.Provider].Model
		cfg.Provider = found.Provider
		cfg.Providers[found.Provider] = sel
	}
	return cfg
}

// DiscoverConfig probes GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY
// and OPENROUTER_API_KEY in that order.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range discoveryOrder {
		k := os.Getenv(strings.ToUpper(name) + "_API_KEY")
		if k == "" {
			continue
		}
		cred := cfg.Providers[name]
		cred.APIKey = k
		cfg.Providers[name] = cred
		cfg.Provider = name
		return cfg, true
	}
	return Config{}, false
}

// Validate reports a missing key for the selected provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Selected().APIKey == "" {
			return fmt.Errorf("QUIZBOX_%s_API_KEY is required for the %s provider",
				strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
