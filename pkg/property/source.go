package property

import (
	"os"

	"github.com/ytimocin/dapr-sdk-go/pkg/sysprop"
)

// Source is the read-only view of the two external stores a property is
// resolved against.
type Source interface {
	// LookupProperty returns the process property stored under name.
	LookupProperty(name string) (string, bool)
	// LookupEnv returns the environment variable stored under name.
	LookupEnv(name string) (string, bool)
}

// ProcessSource reads process properties from Store and environment
// variables from the OS. A nil Store means sysprop.Global().
type ProcessSource struct {
	Store *sysprop.Store
}

// LookupProperty implements Source.
func (s ProcessSource) LookupProperty(name string) (string, bool) {
	store := s.Store
	if store == nil {
		store = sysprop.Global()
	}
	return store.Lookup(name)
}

// LookupEnv implements Source.
func (s ProcessSource) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapSource serves both stores from plain maps. Useful in tests and for
// embedding a fixed configuration.
type MapSource struct {
	Properties map[string]string
	Env        map[string]string
}

// LookupProperty implements Source.
func (s MapSource) LookupProperty(name string) (string, bool) {
	v, ok := s.Properties[name]
	return v, ok
}

// LookupEnv implements Source.
func (s MapSource) LookupEnv(name string) (string, bool) {
	v, ok := s.Env[name]
	return v, ok
}

var (
	_ Source = ProcessSource{}
	_ Source = MapSource{}
)
