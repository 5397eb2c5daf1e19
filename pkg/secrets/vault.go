package secrets

import (
	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// VaultConfig configures the HashiCorp Vault loader.
type VaultConfig struct {
	Address   string `yaml:"address" env:"ADDRESS"`
	Token     string `yaml:"token" env:"TOKEN"`
	Path      string `yaml:"path" env:"PATH"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// Enabled reports whether any Vault setting was provided.
func (v VaultConfig) Enabled() bool {
	return v.Address != "" || v.Token != "" || v.Path != ""
}

// Validate checks that the required fields are set.
func (v VaultConfig) Validate() error {
	if v.Address == "" {
		return errors.New("Vault address is required")
	}
	if v.Token == "" {
		return errors.New("Vault token is required")
	}
	if v.Path == "" {
		return errors.New("Vault path is required")
	}
	return nil
}

// CreateClient builds an authenticated Vault client.
func (v VaultConfig) CreateClient() (*api.Client, error) {
	if err := v.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid Vault configuration")
	}

	cfg := api.DefaultConfig()
	cfg.Address = v.Address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vault client")
	}

	client.SetToken(v.Token)
	if v.Namespace != "" {
		client.SetNamespace(v.Namespace)
	}
	return client, nil
}

// VaultLoader reads keys of a single Vault secret. KV v1 and KV v2 engines
// are both supported:
//
//	dapr.api.token: ${vault:DAPR_API_TOKEN}
type VaultLoader struct {
	logical *api.Logical
	path    string
}

// NewVaultLoader creates a loader reading the secret at path
// (e.g. "secret/data/dapr" for KV v2).
func NewVaultLoader(client *api.Client, path string) *VaultLoader {
	return &VaultLoader{
		logical: client.Logical(),
		path:    path,
	}
}

// Resolve returns the string stored under key in the configured secret.
func (v *VaultLoader) Resolve(key string) (string, error) {
	secret, err := v.logical.Read(v.path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read secret from Vault path %q", v.path)
	}
	if secret == nil || secret.Data == nil {
		return "", errors.Errorf("no secret found at Vault path %q", v.path)
	}

	data := secret.Data
	if nested, present := secret.Data["data"]; present && nested != nil {
		// KV v2
		m, ok := nested.(map[string]any)
		if !ok {
			return "", errors.Errorf("unexpected data format in KV v2 secret at %q", v.path)
		}
		data = m
	}

	value, ok := data[key].(string)
	if !ok {
		return "", errors.Errorf("secret %q not found in Vault at path %q", key, v.path)
	}

	log.Debug().Str("secret_name", key).Str("vault_path", v.path).Msg("Retrieved secret from Vault")
	return value, nil
}

// Name returns the loader name.
func (v *VaultLoader) Name() string {
	return "Vault"
}

var _ ClientFactory[*api.Client] = VaultConfig{}
