package config

import (
	"context"
	"os"
	"strings"
)

// EnvPrefix namespaces bot settings in a shared environment: TIBOT_PORT
// is read before PORT by the default loader.
const EnvPrefix = "TIBOT_"

// EnvProvider reads settings from environment variables, optionally under a prefix
type EnvProvider struct {
	prefix string
}

// NewEnvProvider reads unprefixed variables
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// NewPrefixedEnvProvider reads prefix+key
func NewPrefixedEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{prefix: prefix}
}

// GetSecret returns the variable, treating blank values as unset
func (e *EnvProvider) GetSecret(ctx context.Context, key string) (string, error) {
	return strings.TrimSpace(os.Getenv(e.prefix + key)), nil
}

// Name returns the provider name
func (e *EnvProvider) Name() string {
	if e.prefix != "" {
		return "env:" + e.prefix
	}
	return "env"
}

// IsAvailable is always true
func (e *EnvProvider) IsAvailable(ctx context.Context) bool {
	return true
}
