package property

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// NewString creates a property whose raw value is used verbatim.
func NewString(name, envName, def string, opts ...Option) *Property[string] {
	return New(name, envName, def, ParseString, opts...)
}

// NewBool creates a boolean property. Accepted values are those of
// strconv.ParseBool ("true", "false", "1", "0", "t", "f", ...).
func NewBool(name, envName string, def bool, opts ...Option) *Property[bool] {
	return New(name, envName, def, ParseBool, opts...)
}

// NewInt creates an integer property.
func NewInt(name, envName string, def int, opts ...Option) *Property[int] {
	return New(name, envName, def, ParseInt, opts...)
}

// NewInt64 creates a 64-bit integer property.
func NewInt64(name, envName string, def int64, opts ...Option) *Property[int64] {
	return New(name, envName, def, ParseInt64, opts...)
}

// NewFloat creates a floating point property.
func NewFloat(name, envName string, def float64, opts ...Option) *Property[float64] {
	return New(name, envName, def, ParseFloat, opts...)
}

// NewDuration creates a property holding a Go duration string ("1m30s").
func NewDuration(name, envName string, def time.Duration, opts ...Option) *Property[time.Duration] {
	return New(name, envName, def, ParseDuration, opts...)
}

// NewSeconds creates a duration property whose raw value is a whole number
// of seconds.
func NewSeconds(name, envName string, def time.Duration, opts ...Option) *Property[time.Duration] {
	return New(name, envName, def, parseUnits(time.Second), opts...)
}

// NewMilliseconds creates a duration property whose raw value is a whole
// number of milliseconds.
func NewMilliseconds(name, envName string, def time.Duration, opts ...Option) *Property[time.Duration] {
	return New(name, envName, def, parseUnits(time.Millisecond), opts...)
}

// NewEnum creates a property restricted to the given choices. Matching is
// case-insensitive and the canonical spelling from choices is returned.
//
// NewEnum panics if def is not one of choices.
func NewEnum(name, envName, def string, choices []string, opts ...Option) *Property[string] {
	parse := ParseEnum(choices...)
	if _, err := parse(def); err != nil {
		panic(errors.Wrapf(err, "property %q: invalid default", name))
	}
	return New(name, envName, def, parse, opts...)
}

// ParseString returns raw unchanged.
func ParseString(raw string) (string, error) {
	return raw, nil
}

// ParseBool parses raw with strconv.ParseBool after trimming whitespace.
func ParseBool(raw string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(raw))
}

// ParseInt parses a base 10 int after trimming whitespace.
func ParseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// ParseInt64 parses a base 10 int64 after trimming whitespace.
func ParseInt64(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// ParseFloat parses a float64 after trimming whitespace.
func ParseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// ParseDuration parses a Go duration after trimming whitespace.
func ParseDuration(raw string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(raw))
}

// ParseEnum returns a ParseFunc accepting any of choices, ignoring case.
func ParseEnum(choices ...string) ParseFunc[string] {
	return func(raw string) (string, error) {
		v := strings.TrimSpace(raw)
		for _, c := range choices {
			if strings.EqualFold(c, v) {
				return c, nil
			}
		}
		return "", errors.Errorf("%q is not one of %s", v, strings.Join(choices, ", "))
	}
}

func parseUnits(unit time.Duration) ParseFunc[time.Duration] {
	return func(raw string) (time.Duration, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return 0, err
		}
		if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
			return 0, errors.Errorf("%d is out of range for %s units", n, unit)
		}
		return time.Duration(n) * unit, nil
	}
}
