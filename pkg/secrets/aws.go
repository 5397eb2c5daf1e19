package secrets

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultAWSTimeout = 10 * time.Second

// AWSConfig configures the AWS Secrets Manager loader.
type AWSConfig struct {
	Region          string `yaml:"region" env:"REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"SECRET_ACCESS_KEY"`
	SecretName      string `yaml:"secret_name" env:"SECRET_NAME"`
	// Endpoint overrides the service endpoint, e.g. for LocalStack.
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
}

// Enabled reports whether a secret to read was configured.
func (a AWSConfig) Enabled() bool {
	return a.SecretName != ""
}

// Validate checks that the required fields are set. Credentials are
// optional; without them the default credential chain is used.
func (a AWSConfig) Validate() error {
	if a.Region == "" {
		return errors.New("AWS region is required")
	}
	if a.SecretName == "" {
		return errors.New("AWS secret name is required")
	}
	return nil
}

// CreateClient builds a Secrets Manager client.
func (a AWSConfig) CreateClient() (*secretsmanager.Client, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid AWS configuration")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(a.Region),
	}
	if a.Endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(a.Endpoint))
	}
	if a.AccessKeyID != "" && a.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(a.AccessKeyID, a.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS configuration")
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// AWSLoader reads a Secrets Manager secret. A secret holding a JSON object
// is indexed by key; any other secret string is returned whole and the key
// is ignored.
//
//	dapr.api.token: ${aws:DAPR_API_TOKEN}
type AWSLoader struct {
	client     *secretsmanager.Client
	secretName string
	timeout    time.Duration
}

// NewAWSLoader creates a loader for the secret named secretName.
func NewAWSLoader(client *secretsmanager.Client, secretName string) *AWSLoader {
	return &AWSLoader{
		client:     client,
		secretName: secretName,
		timeout:    defaultAWSTimeout,
	}
}

// Resolve fetches the secret and extracts key from it.
func (a *AWSLoader) Resolve(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	out, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.secretName),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to read secret from AWS Secrets Manager: %q", a.secretName)
	}
	if out.SecretString == nil {
		return "", errors.Errorf("secret %q has no string value", a.secretName)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(*out.SecretString), &fields); err != nil {
		log.Debug().Str("secret_name", a.secretName).Msg("Retrieved plain text secret from AWS Secrets Manager")
		return *out.SecretString, nil
	}

	value, ok := fields[key].(string)
	if !ok {
		return "", errors.Errorf("key %q not found in AWS secret %q", key, a.secretName)
	}

	log.Debug().Str("secret_name", a.secretName).Str("key", key).Msg("Retrieved secret from AWS Secrets Manager")
	return value, nil
}

// Name returns the loader name.
func (a *AWSLoader) Name() string {
	return "AWS Secrets Manager"
}

var (
	_ ClientFactory[*secretsmanager.Client] = AWSConfig{}
	_ ClientFactory[*FileLoader]            = FileConfig{}
	_ Loader                                = (*AWSLoader)(nil)
	_ Loader                                = (*VaultLoader)(nil)
	_ Loader                                = (*FileLoader)(nil)
	_ Loader                                = (*EnvLoader)(nil)
)
