package secrets

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config groups the settings of the optional loaders. A section left empty
// is not registered.
type Config struct {
	File  FileConfig  `yaml:"file" envPrefix:"FILE_"`
	Vault VaultConfig `yaml:"vault" envPrefix:"VAULT_"`
	AWS   AWSConfig   `yaml:"aws" envPrefix:"AWS_"`
}

// RegisterFile registers the "file" loader when a secrets directory is set.
// It runs before the remote loaders so their own settings may reference
// ${file:...} secrets.
func (c Config) RegisterFile(r *Registry) error {
	if c.File.SecretsDir == "" {
		return nil
	}
	loader, err := c.File.CreateClient()
	if err != nil {
		return errors.Wrap(err, "failed to create file secret loader")
	}
	r.Register("file", loader)
	log.Debug().Str("secrets_dir", c.File.SecretsDir).Msg("Registered file secret loader")
	return nil
}

// RegisterRemote registers the "vault" and "aws" loaders whose sections are
// set.
func (c Config) RegisterRemote(r *Registry) error {
	if c.Vault.Enabled() {
		client, err := c.Vault.CreateClient()
		if err != nil {
			return errors.Wrap(err, "failed to create Vault client")
		}
		r.Register("vault", NewVaultLoader(client, c.Vault.Path))
		log.Debug().Str("vault_path", c.Vault.Path).Msg("Registered Vault secret loader")
	}

	if c.AWS.Enabled() {
		client, err := c.AWS.CreateClient()
		if err != nil {
			return errors.Wrap(err, "failed to create AWS Secrets Manager client")
		}
		r.Register("aws", NewAWSLoader(client, c.AWS.SecretName))
		log.Debug().Str("secret_name", c.AWS.SecretName).Msg("Registered AWS secret loader")
	}
	return nil
}
