package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BerylCAtieno/trip-planner-agent/internal/planner"
	"github.com/gin-gonic/gin"
)

type Config struct {
	Port    string
	GinMode string

	Provider string
	APIKey   string
	Model    string

	CurrencySymbol string
	CurrencyName   string

	AllowedOrigins []string
}

// Load reads the process environment. A missing API key for the selected
// provider is a ConfigError and the server must not start.
func Load() (Config, error) {
	cfg := Config{
		Port:           envOrDefault("PORT", "5000"),
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		Provider:       strings.ToLower(envOrDefault("PLANNER_PROVIDER", planner.ProviderGemini)),
		Model:          strings.TrimSpace(os.Getenv("PLANNER_MODEL")),
		CurrencySymbol: envOrDefault("PLANNER_CURRENCY_SYMBOL", planner.DefaultCurrencySymbol),
		CurrencyName:   envOrDefault("PLANNER_CURRENCY_NAME", planner.DefaultCurrencyName),
		AllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
	}

	var keyVar string
	switch cfg.Provider {
	case planner.ProviderGemini:
		keyVar = "GEMINI_API_KEY"
	case planner.ProviderOpenAI:
		keyVar = "OPENAI_API_KEY"
	default:
		return Config{}, planner.NewError(planner.ConfigError,
			fmt.Sprintf("PLANNER_PROVIDER %q is not supported, use %q or %q", cfg.Provider, planner.ProviderGemini, planner.ProviderOpenAI), nil)
	}

	switch cfg.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return Config{}, planner.NewError(planner.ConfigError,
			fmt.Sprintf("GIN_MODE %q is not supported, use %q, %q or %q", cfg.GinMode, gin.DebugMode, gin.ReleaseMode, gin.TestMode), nil)
	}

	for _, origin := range cfg.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return Config{}, planner.NewError(planner.ConfigError,
				fmt.Sprintf("CORS_ALLOWED_ORIGINS entry %q must start with http:// or https://", origin), nil)
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv(keyVar))
	if cfg.APIKey == "" {
		return Config{}, planner.NewError(planner.ConfigError, keyVar+" environment variable is required", nil)
	}

	return cfg, nil
}

func (c Config) PromptOptions() planner.PromptOptions {
	return planner.PromptOptions{
		CurrencySymbol: c.CurrencySymbol,
		CurrencyName:   c.CurrencyName,
	}
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
