// Package config loads CLI configuration from flags and FORMSCRIBE_*
// environment variables, flags taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	FormatJSON       = "json"
	FormatHTML       = "html"
	FormatAppsScript = "appsscript"

	DefaultLogLevel = "info"
)

// Config holds all configuration for the formscribe CLI.
type Config struct {
	// Generation backend
	Provider      string
	Model         string
	OpenAIBaseURL string

	// Output
	Format string
	Output string

	// Behaviour
	Review   bool
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Format:   FormatJSON,
		Review:   false,
		LogLevel: DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("FORMSCRIBE")
	viper.AutomaticEnv()

	viper.SetDefault("provider", cfg.Provider)
	viper.SetDefault("model", cfg.Model)
	viper.SetDefault("openai_base_url", cfg.OpenAIBaseURL)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("review", cfg.Review)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

func defineCommandLineFlags(cfg *Config) {
	pflag.String("provider", cfg.Provider, "Generation backend: 'gemini' or 'openai'")
	pflag.String("model", cfg.Model, "Model name override for the chosen provider")
	pflag.String("openai-base-url", cfg.OpenAIBaseURL, "Base URL for OpenAI-compatible endpoints")
	pflag.String("format", cfg.Format, "Output format: 'json', 'html', or 'appsscript'")
	pflag.StringP("output", "o", cfg.Output, "Output file (stdout if empty)")
	pflag.Bool("review", cfg.Review, "Interactively review required flags before output")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

func bindFlagsToViper() {
	_ = viper.BindPFlag("provider", pflag.Lookup("provider"))
	_ = viper.BindPFlag("model", pflag.Lookup("model"))
	_ = viper.BindPFlag("openai_base_url", pflag.Lookup("openai-base-url"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("review", pflag.Lookup("review"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

func populateConfigFromViper(cfg *Config) {
	cfg.Provider = strings.ToLower(viper.GetString("provider"))
	cfg.Model = viper.GetString("model")
	cfg.OpenAIBaseURL = viper.GetString("openai_base_url")
	cfg.Format = strings.ToLower(viper.GetString("format"))
	cfg.Output = viper.GetString("output")
	cfg.Review = viper.GetBool("review")
	cfg.LogLevel = strings.ToLower(viper.GetString("loglevel"))
}

// OpenAIAPIKey reads the key from the conventional environment variable.
func (c *Config) OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("provider must be %q or %q", ProviderGemini, ProviderOpenAI)
	}

	switch c.Format {
	case FormatJSON, FormatHTML, FormatAppsScript:
	default:
		return errors.New("format must be 'json', 'html', or 'appsscript'")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("loglevel must be one of debug, info, warn, error")
	}
	return nil
}
