package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir is where secret files are mounted unless configured otherwise
const DefaultSecretsDir = "/var/secrets"

// FileProvider reads one setting per file from a mounted directory.
// OPENAI_API_KEY is looked up as openai-api-key first and then under its own
// name, which covers both Kubernetes and Docker secret naming.
type FileProvider struct {
	dir string
}

// NewFileProvider reads settings from files in dir
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

func secretFileNames(key string) []string {
	return []string{strings.ToLower(strings.ReplaceAll(key, "_", "-")), key}
}

// GetSecret returns the trimmed file content, or "" when no file exists for key
func (f *FileProvider) GetSecret(ctx context.Context, key string) (string, error) {
	if f.dir == "" {
		return "", errors.New("no secrets directory configured")
	}

	for _, name := range secretFileNames(key) {
		data, err := os.ReadFile(filepath.Join(f.dir, name))
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read secret %s: %w", name, err)
		}
	}
	return "", nil
}

// Name returns the provider name
func (f *FileProvider) Name() string {
	return "file"
}

// IsAvailable is true when the directory exists
func (f *FileProvider) IsAvailable(ctx context.Context) bool {
	return f.dir != "" && isDir(f.dir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
