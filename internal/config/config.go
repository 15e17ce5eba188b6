package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported data sources
const (
	DataSourceXLSX     = "xlsx"
	DataSourcePostgres = "postgres"
)

// Supported rewrite providers. ProviderNone disables rewriting.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNone   = "none"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Reference table configuration
	Data DataConfig

	// Database configuration, used when Data.Source is postgres
	Database DatabaseConfig

	// Tone rewriter configuration
	LLM LLMConfig

	// Rewrite cache configuration
	Redis RedisConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          string
	GinMode       string
	PublicBaseURL string
	StaticDir     string
	PhotosDir     string
	IndexFile     string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// DataConfig selects where the rooms, departments and general tables come from
type DataConfig struct {
	Source          string
	Dir             string
	RoomsFile       string
	DepartmentsFile string
	GeneralFile     string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	SSLMode  string
}

// LLMConfig holds the tone rewriter configuration
type LLMConfig struct {
	Provider          string
	OpenAIAPIKey      string
	ClaudeAPIKey      string
	Model             string
	BaseURL           string
	Temperature       float64
	MaxTokens         int
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	BreakerEnabled    bool
}

// APIKey returns the key for the selected provider
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderClaude:
		return c.ClaudeAPIKey
	}
	return ""
}

// Enabled reports whether answers should be rewritten at all
func (c LLMConfig) Enabled() bool {
	return c.Provider != ProviderNone && c.APIKey() != ""
}

// RedisConfig holds Redis configuration for the rewrite cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a cache address was configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// Loader handles loading configuration from various sources
type Loader struct {
	provider SecretProvider
}

// NewLoader creates a new configuration loader with the given secret provider
func NewLoader(provider SecretProvider) *Loader {
	return &Loader{
		provider: provider,
	}
}

// NewDefaultLoader creates a loader with the default provider chain:
// 1. Kubernetes secrets (if available)
// 2. File-based secrets (if available)
// 3. TIBOT_-prefixed environment variables
// 4. Environment variables (fallback)
func NewDefaultLoader() *Loader {
	providers := []SecretProvider{
		NewK8sProvider(""),
		NewFileProvider(DefaultSecretsDir),
		NewPrefixedEnvProvider(EnvPrefix),
		NewEnvProvider(),
	}

	return &Loader{
		provider: NewChainProvider(providers...),
	}
}

// Load loads the complete configuration
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:          l.getString(ctx, "PORT", "8001"),
		GinMode:       l.getString(ctx, "GIN_MODE", "debug"),
		PublicBaseURL: strings.TrimRight(l.getString(ctx, "PUBLIC_BASE_URL", "http://127.0.0.1:8001"), "/"),
		StaticDir:     l.getString(ctx, "STATIC_DIR", "."),
		PhotosDir:     l.getString(ctx, "PHOTOS_DIR", "Staff_Photos_V2"),
		IndexFile:     l.getString(ctx, "INDEX_FILE", "index.html"),
		ReadTimeout:   l.getDuration(ctx, "SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:  l.getDuration(ctx, "SERVER_WRITE_TIMEOUT", 30*time.Second),
	}

	cfg.Data = DataConfig{
		Source:          strings.ToLower(l.getString(ctx, "DATA_SOURCE", DataSourceXLSX)),
		Dir:             l.getString(ctx, "DATA_DIR", "."),
		RoomsFile:       l.getString(ctx, "ROOMS_FILE", "Room_Dataset_V2.xlsx"),
		DepartmentsFile: l.getString(ctx, "DEPARTMENTS_FILE", "University_Departments_Dataset_Beautiful.xlsx"),
		GeneralFile:     l.getString(ctx, "GENERAL_FILE", "University_Chatbot_Dataset_v2.xlsx"),
	}

	cfg.Database = DatabaseConfig{
		Host:     l.getString(ctx, "DB_HOST", "localhost"),
		Port:     l.getString(ctx, "DB_PORT", "5432"),
		Database: l.getString(ctx, "DB_NAME", "tibot"),
		Username: l.getString(ctx, "DB_USER", "tibot"),
		Password: l.getString(ctx, "DB_PASSWORD", ""),
		SSLMode:  l.getString(ctx, "DB_SSLMODE", "disable"),
	}

	cfg.LLM = LLMConfig{
		Provider:          strings.ToLower(l.getString(ctx, "LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:      l.getString(ctx, "OPENAI_API_KEY", ""),
		ClaudeAPIKey:      l.getString(ctx, "CLAUDE_API_KEY", ""),
		Model:             l.getString(ctx, "LLM_MODEL", ""),
		BaseURL:           l.getString(ctx, "LLM_BASE_URL", ""),
		Temperature:       l.getFloat(ctx, "LLM_TEMPERATURE", 0.7),
		MaxTokens:         l.getInt(ctx, "LLM_MAX_TOKENS", 300),
		Timeout:           l.getDuration(ctx, "REWRITE_TIMEOUT", 15*time.Second),
		RequestsPerSecond: l.getFloat(ctx, "REWRITE_RATE", 5),
		Burst:             l.getInt(ctx, "REWRITE_BURST", 10),
		BreakerEnabled:    l.getBool(ctx, "REWRITE_BREAKER", true),
	}

	cfg.Redis = RedisConfig{
		Addr:     l.getString(ctx, "REDIS_ADDR", ""),
		Password: l.getString(ctx, "REDIS_PASSWORD", ""),
		DB:       l.getInt(ctx, "REDIS_DB", 0),
		TTL:      l.getDuration(ctx, "REDIS_TTL", 24*time.Hour),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(l.getString(ctx, "LOG_LEVEL", "info")),
		Format: strings.ToLower(l.getString(ctx, "LOG_FORMAT", "json")),
	}

	return cfg, nil
}

// Helper methods for retrieving and parsing configuration values

func (l *Loader) getString(ctx context.Context, key, defaultValue string) string {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}
	return value
}

func (l *Loader) getBool(ctx context.Context, key string, defaultValue bool) bool {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func (l *Loader) getInt(ctx context.Context, key string, defaultValue int) int {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

func (l *Loader) getFloat(ctx context.Context, key string, defaultValue float64) float64 {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func (l *Loader) getDuration(ctx context.Context, key string, defaultValue time.Duration) time.Duration {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// MustLoad loads configuration and panics on error
// Useful for application startup
func (l *Loader) MustLoad(ctx context.Context) *Config {
	cfg, err := l.Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
