package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Generation service configuration
	OpenAICfg OpenAIConfig `envPrefix:"OPENAI_"`

	// Revision sheet configuration
	SheetCfg SheetConfig `envPrefix:"SHEET_"`

	// Tutor chat configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// Session store configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// OpenAIConfig holds the generation service client configuration.
type OpenAIConfig struct {
	HTTPClientConfig
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
}

// SheetConfig holds revision sheet generation settings.
type SheetConfig struct {
	// FreeLimit is the number of generations admitted per session.
	FreeLimit int `env:"FREE_LIMIT" envDefault:"5"`

	// MaxContentRunes bounds the course content embedded into a prompt.
	MaxContentRunes int `env:"MAX_CONTENT_RUNES" envDefault:"24000"`

	Language    string  `env:"LANGUAGE" envDefault:"English"`
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.4"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"0"`

	// OutputDir is where rendered documents are written.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"documents"`
}

// ChatConfig holds tutor conversation settings.
type ChatConfig struct {
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.5"`

	// MaxWindowTurns bounds how many prior turns are assembled into a
	// request. 0 disables the bound.
	MaxWindowTurns int `env:"MAX_WINDOW_TURNS" envDefault:"20"`
}

// SessionConfig holds in-memory session store settings.
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"2h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// HTTPClientConfig tunes the outbound HTTP client.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"90s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"90s"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`    // 5 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.OpenAICfg.APIKey == "" && !cfg.EnableMocks {
		errs = append(errs, "OPENAI_API_KEY must be set unless ENABLE_MOCKS=true")
	}

	if cfg.SheetCfg.FreeLimit < 1 {
		errs = append(errs, fmt.Sprintf("SHEET_FREE_LIMIT must be positive, got %d", cfg.SheetCfg.FreeLimit))
	}

	if cfg.SheetCfg.MaxContentRunes < 0 {
		errs = append(errs, fmt.Sprintf("SHEET_MAX_CONTENT_RUNES must not be negative, got %d", cfg.SheetCfg.MaxContentRunes))
	}

	if cfg.SheetCfg.Temperature < 0 || cfg.SheetCfg.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("SHEET_TEMPERATURE must be between 0 and 2, got %g", cfg.SheetCfg.Temperature))
	}

	if cfg.ChatCfg.Temperature < 0 || cfg.ChatCfg.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("CHAT_TEMPERATURE must be between 0 and 2, got %g", cfg.ChatCfg.Temperature))
	}

	if cfg.ChatCfg.MaxWindowTurns < 0 {
		errs = append(errs, fmt.Sprintf("CHAT_MAX_WINDOW_TURNS must not be negative, got %d", cfg.ChatCfg.MaxWindowTurns))
	}

	if cfg.SessionCfg.TTL < time.Minute {
		errs = append(errs, fmt.Sprintf("SESSION_TTL must be at least 1m, got %s", cfg.SessionCfg.TTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
