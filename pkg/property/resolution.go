package property

import (
	"fmt"
)

// Tier identifies the source that supplied a resolved value.
type Tier int

const (
	TierOverride Tier = iota
	TierProperty
	TierEnvironment
	TierDefault
)

// String returns the tier name used in logs and listings.
func (t Tier) String() string {
	switch t {
	case TierOverride:
		return "override"
	case TierProperty:
		return "property"
	case TierEnvironment:
		return "environment"
	case TierDefault:
		return "default"
	default:
		return "unknown"
	}
}

// MarshalText renders the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Resolution is the outcome of resolving a property.
type Resolution[T any] struct {
	// Value is the effective value. It is always set.
	Value T
	// Tier is the tier that supplied Value.
	Tier Tier
	// Failures holds one *ParseError for every tier that held a value
	// which could not be parsed, in resolution order.
	Failures []error
}

// FellBack reports whether a higher tier was present but invalid.
func (r Resolution[T]) FellBack() bool {
	return len(r.Failures) > 0
}

// ParseError describes a tier whose raw value could not be parsed.
type ParseError struct {
	// Name is the property name, or the environment variable name for
	// TierEnvironment.
	Name  string
	Tier  Tier
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s value %q for %s: %v", e.Tier, e.Value, e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Inspection is a string rendering of a resolved property.
type Inspection struct {
	Name     string `json:"name"`
	EnvName  string `json:"env"`
	Value    string `json:"value"`
	Default  string `json:"default"`
	Tier     Tier   `json:"tier"`
	Failures int    `json:"failures,omitempty"`
}

// Inspector is implemented by every Property regardless of its value type.
type Inspector interface {
	Name() string
	EnvName() string
	Inspect(src Source, override string) Inspection
}
