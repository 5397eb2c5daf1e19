package daprconfig

import (
	"github.com/ytimocin/dapr-sdk-go/internal/snapshot"
	"github.com/ytimocin/dapr-sdk-go/pkg/property"
)

// Properties resolves properties for one client: values in its overrides
// map, keyed by property name, win over process properties and the
// environment.
type Properties struct {
	overrides map[string]string
	source    property.Source
}

// Option configures Properties.
type Option func(*Properties)

// WithSource resolves against src instead of the process-wide stores.
func WithSource(src property.Source) Option {
	return func(p *Properties) {
		p.source = src
	}
}

// NewProperties creates a holder. overrides is copied, so later changes to
// the caller's map have no effect.
func NewProperties(overrides map[string]string, opts ...Option) *Properties {
	p := &Properties{
		overrides: map[string]string{},
		source:    property.ProcessSource{},
	}
	if overrides != nil {
		p.overrides = *snapshot.MustCopy(&overrides)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Override returns the override held for the named property, or "".
func (p *Properties) Override(name string) string {
	return p.overrides[name]
}

// Get returns the effective value of prop.
func Get[T any](p *Properties, prop *property.Property[T]) T {
	return Resolve(p, prop).Value
}

// Resolve resolves prop and reports the winning tier.
func Resolve[T any](p *Properties, prop *property.Property[T]) property.Resolution[T] {
	return prop.ResolveFrom(p.source, p.overrides[prop.Name()])
}

// Inspect renders a single property.
func (p *Properties) Inspect(prop property.Inspector) property.Inspection {
	return prop.Inspect(p.source, p.overrides[prop.Name()])
}

// InspectAll renders every catalogue property.
func (p *Properties) InspectAll() []property.Inspection {
	out := make([]property.Inspection, 0, len(catalog))
	for _, prop := range catalog {
		out = append(out, p.Inspect(prop))
	}
	return out
}
