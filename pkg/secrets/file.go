package secrets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// FileConfig configures the file loader.
type FileConfig struct {
	SecretsDir string `yaml:"secrets_dir" env:"DIR"`
}

// Validate checks that SecretsDir names an existing directory.
func (f FileConfig) Validate() error {
	if f.SecretsDir == "" {
		return errors.New("secrets_dir is required for file loader")
	}

	info, err := os.Stat(f.SecretsDir)
	if os.IsNotExist(err) {
		return errors.Errorf("secrets_dir %q does not exist", f.SecretsDir)
	}
	if err != nil {
		return errors.Wrapf(err, "error accessing secrets_dir %q", f.SecretsDir)
	}
	if !info.IsDir() {
		return errors.Errorf("secrets_dir %q is not a directory", f.SecretsDir)
	}
	return nil
}

// CreateClient validates the configuration and builds a FileLoader.
func (f FileConfig) CreateClient() (*FileLoader, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return NewFileLoader(f.SecretsDir), nil
}

// FileLoader reads one secret per file from a directory, the layout used by
// Docker and Kubernetes secret mounts:
//
//	dapr.api.token: ${file:dapr_token}   # <secretsDir>/dapr_token
//
// File contents are trimmed of surrounding whitespace.
type FileLoader struct {
	secretsDir string
}

// NewFileLoader creates a loader rooted at secretsDir.
func NewFileLoader(secretsDir string) *FileLoader {
	return &FileLoader{secretsDir: secretsDir}
}

// Resolve reads the file named key. Keys that would escape the secrets
// directory are rejected.
func (f *FileLoader) Resolve(key string) (string, error) {
	if f.secretsDir == "" {
		return "", errors.New("no secrets directory configured")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("no file specified for file secret")
	}
	if filepath.IsAbs(key) {
		return "", errors.New("invalid secret key: absolute paths not allowed")
	}

	cleanKey := filepath.Clean(key)
	if strings.Contains(cleanKey, "..") {
		return "", errors.New("invalid secret key: path traversal detected")
	}

	absDir, err := filepath.Abs(f.secretsDir)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve secrets directory")
	}
	absPath := filepath.Join(absDir, cleanKey)
	if !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) {
		return "", errors.New("invalid secret key: outside secrets directory")
	}

	// #nosec G304 -- path is confined to the secrets directory above
	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("secret %q not found", cleanKey)
		}
		return "", errors.Wrapf(err, "failed to read secret %q", cleanKey)
	}

	log.Debug().Str("file", absPath).Msg("Retrieved secret from file")
	return strings.TrimSpace(string(content)), nil
}

// Name returns the loader name.
func (f *FileLoader) Name() string {
	return "File"
}
