// internal/config/config.go
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	HTTPAddr          string   `mapstructure:"HTTP_ADDR"`
	DBURL             string   `mapstructure:"DB_URL"`
	AIAPIKey          string   `mapstructure:"AI_API_KEY"`
	AIBaseURL         string   `mapstructure:"AI_BASE_URL"`
	AIModel           string   `mapstructure:"AI_MODEL"`
	GithubBaseURL     string   `mapstructure:"GITHUB_BASE_URL"`
	LanguageFetchSize int      `mapstructure:"LANGUAGE_FETCH_CONCURRENCY"`
	SessionTokens     []string `mapstructure:"SESSION_TOKENS"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("AI_BASE_URL", "https://ai.gateway.lovable.dev/v1")
	viper.SetDefault("AI_MODEL", "google/gemini-2.5-flash")
	viper.SetDefault("LANGUAGE_FETCH_CONCURRENCY", 5)

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.AIAPIKey == "" {
		return nil, errors.New("AI_API_KEY is a required configuration field")
	}
	if cfg.LanguageFetchSize <= 0 {
		return nil, errors.New("LANGUAGE_FETCH_CONCURRENCY must be a positive integer")
	}
	if len(cfg.SessionTokens) == 0 {
		return nil, errors.New("SESSION_TOKENS must contain at least one token=user entry")
	}

	return &cfg, nil
}
