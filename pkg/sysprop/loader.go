package sysprop

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ytimocin/dapr-sdk-go/internal/expansion"
	"github.com/ytimocin/dapr-sdk-go/pkg/secrets"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) property file and
// returns its entries flattened to dotted keys:
//
//	dapr:
//	  http:
//	    port: 3500        # dapr.http.port=3500
//
// Scalars are rendered with fmt.Sprint and lists are joined with ",".
// Secret references such as ${vault:API_TOKEN} or ${file:token} in values
// are expanded through the secrets registry.
func LoadFile(path string) (map[string]string, error) {
	// #nosec G304 -- property files are chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading property file %q", path)
	}

	var tree map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tree)
	case ".toml":
		err = toml.Unmarshal(data, &tree)
	default:
		return nil, errors.Errorf("unsupported property file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding property file %q", path)
	}

	values := make(map[string]string)
	flatten("", tree, values)

	if err = ExpandReferences(path, values, secrets.Resolve); err != nil {
		return nil, errors.Wrapf(err, "error expanding property file %q", path)
	}
	return values, nil
}

// ExpandReferences expands the ${prefix:key} references of every value in
// place. A reference that resolves to an empty string is logged with the
// property that holds it. origin is only used in logs.
func ExpandReferences(origin string, values map[string]string, resolve expansion.ResolveFunc) error {
	for name, raw := range values {
		expanded, err := expansion.Expand(raw, func(ref string) (string, error) {
			v, err := resolve(ref)
			if err == nil && v == "" {
				log.Warn().
					Str("property", name).
					Str("reference", ref).
					Str("origin", origin).
					Msgf("Reference in property %s resolved to an empty value", name)
			}
			return v, err
		})
		if err != nil {
			return errors.Wrapf(err, "error expanding %q", name)
		}
		values[name] = expanded
	}
	return nil
}

// LoadFiles loads every file in order and merges the results. When the same
// key appears in several files the last one wins.
func LoadFiles(paths ...string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, path := range paths {
		values, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err = mergo.Merge(&merged, values, mergo.WithOverride); err != nil {
			return nil, errors.Wrapf(err, "error merging property file %q", path)
		}
	}
	return merged, nil
}

func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			flatten(join(prefix, k), child, out)
		}
	case map[any]any:
		for k, child := range v {
			flatten(join(prefix, fmt.Sprint(k)), child, out)
		}
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		out[prefix] = strings.Join(parts, ",")
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// ParseDefinition splits a "-D" style definition into key and value.
// "name=value" yields ("name", "value"); a bare "name" yields ("name", "").
func ParseDefinition(def string) (key, value string, err error) {
	key, value, _ = strings.Cut(def, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errors.Errorf("invalid property definition %q: empty name", def)
	}
	return key, value, nil
}

// ParseDefinitions parses every definition, later duplicates winning.
func ParseDefinitions(defs []string) (map[string]string, error) {
	values := make(map[string]string, len(defs))
	for _, def := range defs {
		k, v, err := ParseDefinition(def)
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}

// Format renders values as sorted "key=value" lines.
func Format(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k])
		b.WriteByte('\n')
	}
	return b.String()
}
