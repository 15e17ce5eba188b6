package config

import (
	"context"
	"os"
	"path/filepath"
)

// ServiceAccountDir is mounted into every Kubernetes pod
const ServiceAccountDir = "/var/run/secrets/kubernetes.io/serviceaccount"

// K8sProvider reads mounted secret files, but only inside a pod. A leftover
// secrets directory on a developer machine is ignored.
type K8sProvider struct {
	*FileProvider
	serviceAccountDir string
}

// NewK8sProvider reads secrets from secretsDir, DefaultSecretsDir when empty
func NewK8sProvider(secretsDir string) *K8sProvider {
	if secretsDir == "" {
		secretsDir = DefaultSecretsDir
	}
	return &K8sProvider{
		FileProvider:      NewFileProvider(secretsDir),
		serviceAccountDir: ServiceAccountDir,
	}
}

// Name returns the provider name
func (k *K8sProvider) Name() string {
	return "kubernetes"
}

// IsAvailable is true when a service account token and the secrets directory are both mounted
func (k *K8sProvider) IsAvailable(ctx context.Context) bool {
	if _, err := os.Stat(filepath.Join(k.serviceAccountDir, "token")); err != nil {
		return false
	}
	return k.FileProvider.IsAvailable(ctx)
}
