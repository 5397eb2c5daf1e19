package secrets

import (
	"os"

	"github.com/rs/zerolog/log"
)

// EnvLoader serves references from the process environment:
//
//	dapr.api.token: ${DAPR_TOKEN}       # implicit
//	dapr.api.token: ${env:DAPR_TOKEN}   # explicit
//
// An unset variable resolves to "" so that a property referencing it reads
// as absent and falls through to its environment tier or default. Callers
// that know which property holds the reference report the empty result.
type EnvLoader struct{}

// NewEnvLoader creates an environment variable loader.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{}
}

// Resolve returns the value of the variable named key, or "" when unset.
func (e *EnvLoader) Resolve(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		log.Debug().Str("env", key).Msg("Referenced environment variable is not set")
	}
	return value, nil
}

// Name returns the loader name.
func (e *EnvLoader) Name() string {
	return "Environment"
}
