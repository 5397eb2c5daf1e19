// Package property provides typed configuration properties that resolve their
// value from, in order: a caller-supplied override, a process-level property,
// an environment variable and finally a compiled-in default.
//
// A value that is present but cannot be parsed never surfaces as an error to
// Get callers. It is logged as a warning and resolution moves on to the next
// tier. Callers that need to know which tier won, or why a tier was skipped,
// use Resolve instead.
package property

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseFunc converts a raw string into a value of type T.
// It returns an error when the string is not a valid T.
type ParseFunc[T any] func(raw string) (T, error)

// Property is a typed configuration value identified by a process property
// name and an environment variable name.
//
// A Property is immutable once built and safe for concurrent use. Every call
// to Get re-reads its Source, so the result follows changes to the process
// properties or the environment.
type Property[T any] struct {
	name         string
	envName      string
	defaultValue T
	parse        ParseFunc[T]
	source       Source
	logger       *zerolog.Logger
}

// Option configures a Property at construction time.
type Option func(*options)

type options struct {
	source Source
	logger *zerolog.Logger
}

// WithSource makes the property read process properties and environment
// variables from src instead of the process-wide defaults.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithLogger sets the logger used for invalid value warnings.
// Without it the global zerolog logger is used at resolution time.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// New creates a property that parses its raw values with parse.
//
// Parameters:
//   - name: process property name (e.g. "dapr.http.port")
//   - envName: environment variable name (e.g. "DAPR_HTTP_PORT")
//   - def: value returned when no tier holds a valid value
//   - parse: conversion from a raw string to T
//
// New panics if parse is nil.
func New[T any](name, envName string, def T, parse ParseFunc[T], opts ...Option) *Property[T] {
	if parse == nil {
		panic(fmt.Sprintf("property %q: nil parse function", name))
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = ProcessSource{}
	}

	return &Property[T]{
		name:         name,
		envName:      envName,
		defaultValue: def,
		parse:        parse,
		source:       o.source,
		logger:       o.logger,
	}
}

// Name returns the process property name.
func (p *Property[T]) Name() string {
	return p.name
}

// EnvName returns the environment variable name.
func (p *Property[T]) EnvName() string {
	return p.envName
}

// Default returns the value used when every other tier is absent or invalid.
func (p *Property[T]) Default() T {
	return p.defaultValue
}

// Get returns the effective value without an override.
func (p *Property[T]) Get() T {
	return p.GetWithOverride("")
}

// GetWithOverride returns the effective value, giving precedence to override
// when it is non-empty and parses.
func (p *Property[T]) GetWithOverride(override string) T {
	return p.Resolve(override).Value
}

// Resolve runs the resolution chain against the property's own source and
// reports which tier supplied the value.
func (p *Property[T]) Resolve(override string) Resolution[T] {
	return p.ResolveFrom(p.source, override)
}

// ResolveFrom runs the resolution chain against src.
// A nil src falls back to the property's own source.
func (p *Property[T]) ResolveFrom(src Source, override string) Resolution[T] {
	if src == nil {
		src = p.source
	}

	var failures []error

	if override != "" {
		v, err := p.parse(override)
		if err == nil {
			return Resolution[T]{Value: v, Tier: TierOverride, Failures: failures}
		}
		failures = append(failures, p.fail(TierOverride, p.name, override, err))
	}

	if raw, ok := src.LookupProperty(p.name); ok && strings.TrimSpace(raw) != "" {
		v, err := p.parse(raw)
		if err == nil {
			return Resolution[T]{Value: v, Tier: TierProperty, Failures: failures}
		}
		failures = append(failures, p.fail(TierProperty, p.name, raw, err))
	}

	if raw, ok := src.LookupEnv(p.envName); ok && strings.TrimSpace(raw) != "" {
		v, err := p.parse(raw)
		if err == nil {
			return Resolution[T]{Value: v, Tier: TierEnvironment, Failures: failures}
		}
		failures = append(failures, p.fail(TierEnvironment, p.envName, raw, err))
	}

	return Resolution[T]{Value: p.defaultValue, Tier: TierDefault, Failures: failures}
}

// Inspect resolves the property against src and renders the result as
// strings, for listings and diagnostics.
func (p *Property[T]) Inspect(src Source, override string) Inspection {
	res := p.ResolveFrom(src, override)
	return Inspection{
		Name:     p.name,
		EnvName:  p.envName,
		Value:    fmt.Sprint(res.Value),
		Default:  fmt.Sprint(p.defaultValue),
		Tier:     res.Tier,
		Failures: len(res.Failures),
	}
}

func (p *Property[T]) fail(tier Tier, key, raw string, err error) *ParseError {
	perr := &ParseError{Name: key, Tier: tier, Value: raw, Err: err}

	logger := p.logger
	if logger == nil {
		logger = &log.Logger
	}

	switch tier {
	case TierOverride:
		logger.Warn().Err(err).Str("property", key).Msgf("Invalid override value in property: %s", key)
	case TierProperty:
		logger.Warn().Err(err).Str("property", key).Msgf("Invalid value in property: %s", key)
	default:
		logger.Warn().Err(err).Str("env", key).Msgf("Invalid value in environment variable: %s", key)
	}

	return perr
}
