package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation error(s):\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// HasErrors returns true if there are any validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate performs comprehensive validation on the configuration
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateLLM()...)
	errors = append(errors, c.validateRedis()...)
	errors = append(errors, c.validateLog()...)

	if errors.HasErrors() {
		return errors
	}

	return nil
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.Port == "" {
		errors = append(errors, ValidationError{
			Field:   "Server.Port",
			Message: "server port is required",
		})
	} else if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "Server.Port",
			Message: fmt.Sprintf("invalid port number: %s", c.Server.Port),
		})
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.GinMode] {
		errors = append(errors, ValidationError{
			Field:   "Server.GinMode",
			Message: fmt.Sprintf("invalid gin mode: %s (must be debug, release, or test)", c.Server.GinMode),
		})
	}

	if u, err := url.Parse(c.Server.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "Server.PublicBaseURL",
			Message: fmt.Sprintf("public base URL must be an absolute URL: %q", c.Server.PublicBaseURL),
		})
	}

	return errors
}

func (c *Config) validateData() []ValidationError {
	var errors []ValidationError

	switch c.Data.Source {
	case DataSourceXLSX:
		if c.Data.RoomsFile == "" || c.Data.DepartmentsFile == "" || c.Data.GeneralFile == "" {
			errors = append(errors, ValidationError{
				Field:   "Data",
				Message: "xlsx source requires rooms, departments and general workbook names",
			})
		}
	case DataSourcePostgres:
		errors = append(errors, c.validateDatabase()...)
	default:
		errors = append(errors, ValidationError{
			Field:   "Data.Source",
			Message: fmt.Sprintf("invalid data source: %s (must be xlsx or postgres)", c.Data.Source),
		})
	}

	return errors
}

func (c *Config) validateDatabase() []ValidationError {
	var errors []ValidationError

	if c.Database.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "Database.Host",
			Message: "database host is required",
		})
	}

	if c.Database.Port == "" {
		errors = append(errors, ValidationError{
			Field:   "Database.Port",
			Message: "database port is required",
		})
	}

	if c.Database.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "Database.Database",
			Message: "database name is required",
		})
	}

	if c.Database.Username == "" {
		errors = append(errors, ValidationError{
			Field:   "Database.Username",
			Message: "database username is required",
		})
	}

	return errors
}

func (c *Config) validateLLM() []ValidationError {
	var errors []ValidationError

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderNone:
	default:
		errors = append(errors, ValidationError{
			Field:   "LLM.Provider",
			Message: fmt.Sprintf("invalid provider: %s (must be openai, claude, or none)", c.LLM.Provider),
		})
	}

	// API keys are optional: without one answers are served unrewritten
	if c.LLM.APIKey() != "" && len(c.LLM.APIKey()) < 10 {
		errors = append(errors, ValidationError{
			Field:   "LLM.APIKey",
			Message: "API key appears to be invalid (too short)",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "LLM.Temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.LLM.MaxTokens < 1 {
		errors = append(errors, ValidationError{
			Field:   "LLM.MaxTokens",
			Message: "max tokens must be at least 1",
		})
	}

	if c.LLM.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "LLM.Timeout",
			Message: "rewrite timeout must be positive",
		})
	}

	if c.LLM.RequestsPerSecond <= 0 {
		errors = append(errors, ValidationError{
			Field:   "LLM.RequestsPerSecond",
			Message: "rewrite rate must be positive",
		})
	}

	if c.LLM.Burst < 1 {
		errors = append(errors, ValidationError{
			Field:   "LLM.Burst",
			Message: "rewrite burst must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateRedis() []ValidationError {
	var errors []ValidationError

	if !c.Redis.Enabled() {
		return errors
	}

	if c.Redis.DB < 0 {
		errors = append(errors, ValidationError{
			Field:   "Redis.DB",
			Message: "redis database index cannot be negative",
		})
	}

	if c.Redis.TTL <= 0 {
		errors = append(errors, ValidationError{
			Field:   "Redis.TTL",
			Message: "cache TTL must be positive",
		})
	}

	return errors
}

func (c *Config) validateLog() []ValidationError {
	var errors []ValidationError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errors = append(errors, ValidationError{
			Field:   "Log.Level",
			Message: fmt.Sprintf("invalid log level: %s", c.Log.Level),
		})
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		errors = append(errors, ValidationError{
			Field:   "Log.Format",
			Message: fmt.Sprintf("invalid log format: %s (must be json or console)", c.Log.Format),
		})
	}

	return errors
}

// ValidateProduction performs additional validation for production environments
// It checks for insecure default values that should not be used in production
func (c *Config) ValidateProduction() error {
	var errors ValidationErrors

	if c.Data.Source == DataSourcePostgres && (c.Database.Password == "" || c.Database.Password == "changeme") {
		errors = append(errors, ValidationError{
			Field:   "Database.Password",
			Message: "production deployment must not use default or empty database password",
		})
	}

	if c.Redis.Enabled() && (c.Redis.Password == "" || c.Redis.Password == "changeme") {
		errors = append(errors, ValidationError{
			Field:   "Redis.Password",
			Message: "production deployment must not use default or empty Redis password",
		})
	}

	if c.LLM.APIKey() == "your-api-key-here" {
		errors = append(errors, ValidationError{
			Field:   "LLM.APIKey",
			Message: "production deployment must not use a placeholder API key",
		})
	}

	if strings.Contains(c.Server.PublicBaseURL, "127.0.0.1") || strings.Contains(c.Server.PublicBaseURL, "localhost") {
		errors = append(errors, ValidationError{
			Field:   "Server.PublicBaseURL",
			Message: "production deployment should publish photos on a reachable host",
		})
	}

	if c.Log.Format != "json" {
		errors = append(errors, ValidationError{
			Field:   "Log.Format",
			Message: "production deployment should log json",
		})
	}

	if errors.HasErrors() {
		return errors
	}

	return nil
}

// IsProduction determines if the current environment is production
// based on the GinMode setting
func (c *Config) IsProduction() bool {
	return c.Server.GinMode == "release"
}

// ValidateWithContext validates configuration and runs production checks if appropriate
func (c *Config) ValidateWithContext() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.IsProduction() {
		if err := c.ValidateProduction(); err != nil {
			return fmt.Errorf("production validation failed: %w", err)
		}
	}

	return nil
}
