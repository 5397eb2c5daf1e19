// Package secrets resolves secret references of the form "prefix:key" that
// appear inside property files and CLI settings as ${prefix:key}.
//
// Each prefix is served by a Loader. The "env" loader is always available
// and is also used for references without a prefix. File, Vault and AWS
// Secrets Manager loaders are registered by the application once their
// configuration is known.
package secrets

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Loader retrieves the secret stored under a key.
type Loader interface {
	// Resolve returns the value for key (the reference without its prefix).
	Resolve(key string) (string, error)

	// Name returns a human-readable name for logs and errors.
	Name() string
}

// ClientFactory is implemented by loader configurations that build the
// client their loader talks to.
type ClientFactory[T any] interface {
	Validate() error
	CreateClient() (T, error)
}

// Registry maps prefixes to loaders. It is safe for concurrent use.
type Registry struct {
	loaders map[string]Loader
	mu      sync.RWMutex
}

// Default is the registry used by the package-level functions.
var Default = NewRegistry()

// NewRegistry creates a registry with the "env" loader registered.
func NewRegistry() *Registry {
	return &Registry{
		loaders: map[string]Loader{
			"env": NewEnvLoader(),
		},
	}
}

// Register associates prefix (without the trailing colon) with loader,
// replacing and logging any loader already registered for it.
func (r *Registry) Register(prefix string, loader Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[prefix]; exists {
		log.Warn().Str("prefix", prefix).Msg("Overriding existing secret loader")
	}
	r.loaders[prefix] = loader
}

// Unregister removes the loader for prefix.
func (r *Registry) Unregister(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loaders, prefix)
}

// Loader returns the loader registered for prefix, or nil.
func (r *Registry) Loader(prefix string) Loader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaders[prefix]
}

// Prefixes returns the registered prefixes in lexical order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.loaders))
	for p := range r.loaders {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Resolve resolves a reference such as "vault:API_TOKEN" or "PORT".
func (r *Registry) Resolve(ref string) (string, error) {
	prefix, key := splitReference(ref)

	loader := r.Loader(prefix)
	if loader == nil {
		return "", errors.Errorf("no secret loader registered for prefix %q", prefix)
	}

	value, err := loader.Resolve(key)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %q using %s loader", ref, loader.Name())
	}
	return value, nil
}

// Register registers loader in the Default registry.
func Register(prefix string, loader Loader) {
	Default.Register(prefix, loader)
}

// Unregister removes prefix from the Default registry.
func Unregister(prefix string) {
	Default.Unregister(prefix)
}

// Resolve resolves ref with the Default registry.
func Resolve(ref string) (string, error) {
	return Default.Resolve(ref)
}

// splitReference splits at the first colon; no colon means "env".
//
//	"vault:SECRET_KEY"   -> ("vault", "SECRET_KEY")
//	"PORT"               -> ("env", "PORT")
//	"custom:db:password" -> ("custom", "db:password")
func splitReference(ref string) (prefix, key string) {
	prefix, key, found := strings.Cut(ref, ":")
	if !found {
		return "env", ref
	}
	return prefix, key
}
