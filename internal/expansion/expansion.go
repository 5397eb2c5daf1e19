// Package expansion replaces ${prefix:key} references in configuration values
// with the values returned by a resolver.
package expansion

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// ResolveFunc resolves a single reference such as "vault:API_TOKEN" or "PORT".
type ResolveFunc func(ref string) (string, error)

// Expand replaces every ${ref} in s with resolve(ref). A "$" that does not
// open a reference is kept, and "$${" yields a literal "${". An unterminated
// "${" is kept as is. The first resolver error aborts the expansion.
func Expand(s string, resolve ResolveFunc) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "$${"):
			b.WriteString("${")
			i += 3
		case strings.HasPrefix(s[i:], "${"):
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String(), nil
			}
			ref := s[i+2 : i+2+end]
			v, err := resolve(ref)
			if err != nil {
				return "", errors.Wrapf(err, "error resolving reference %q", ref)
			}
			b.WriteString(v)
			i += end + 3
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), nil
}

// ExpandVariables walks the value toExpand points to and expands every
// settable string inside structs, pointers, slices and maps.
func ExpandVariables(toExpand any, resolve ResolveFunc) error {
	if toExpand == nil {
		return nil
	}

	v := reflect.ValueOf(toExpand)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return expandValue(v, resolve)
}

func expandValue(val reflect.Value, resolve ResolveFunc) error {
	switch val.Kind() {
	case reflect.String:
		if !val.CanSet() {
			return nil
		}
		expanded, err := Expand(val.String(), resolve)
		if err != nil {
			return err
		}
		val.SetString(expanded)

	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if err := expandValue(val.Field(i), resolve); err != nil {
				return err
			}
		}

	case reflect.Ptr:
		if !val.IsNil() {
			return expandValue(val.Elem(), resolve)
		}

	case reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			if err := expandValue(val.Index(i), resolve); err != nil {
				return err
			}
		}

	case reflect.Map:
		for _, key := range val.MapKeys() {
			// map elements are not addressable
			elem := reflect.New(val.Type().Elem()).Elem()
			elem.Set(val.MapIndex(key))
			if err := expandValue(elem, resolve); err != nil {
				return err
			}
			val.SetMapIndex(key, elem)
		}

	default:
	}

	return nil
}
