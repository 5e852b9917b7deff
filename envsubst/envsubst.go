package envsubst

import (
	"os"
	"reflect"
	"strings"

	"github.com/Azhovan/appprops"
	"github.com/Azhovan/appprops/internal/normalize"
	"github.com/Azhovan/appprops/internal/tag"
)

const redacted = "***redacted***"

// Metadata describes how resolved values are treated.
type Metadata struct {
	// Secret redacts every resolved value from log output.
	// Fields tagged appprops:"secret" are redacted regardless.
	Secret bool
}

// Resolver substitutes variable references using Lookup.
type Resolver struct {
	// Lookup returns a variable's value and whether it is set.
	// Nil means os.LookupEnv.
	Lookup func(name string) (string, bool)
}

// Env returns a Resolver backed by the process environment.
func Env() *Resolver {
	return &Resolver{Lookup: os.LookupEnv}
}

// FromMap returns a Resolver backed by a fixed set of variables.
func FromMap(vars map[string]string) *Resolver {
	return &Resolver{Lookup: func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}}
}

// Replace resolves every reference in v against the process environment and
// returns the result. v itself is never modified.
func Replace[T any](v T, meta Metadata) T {
	return ReplaceWith(Env(), v, meta)
}

// ReplaceWith is Replace with an explicit resolver.
func ReplaceWith[T any](r *Resolver, v T, meta Metadata) T {
	src := reflect.ValueOf(&v).Elem()
	dst := reflect.New(src.Type()).Elem()
	r.copyValue(dst, src, "", meta.Secret)
	return *dst.Addr().Interface().(*T)
}

// Expand resolves the references in a single string.
func (r *Resolver) Expand(s string, meta Metadata) string {
	return r.expand(s, "", meta.Secret)
}

// copyValue deep-copies src into dst, substituting strings on the way.
// dst must be settable and hold the zero value of src's type.
func (r *Resolver) copyValue(dst, src reflect.Value, path string, secret bool) {
	switch src.Kind() {
	case reflect.String:
		dst.SetString(r.expand(src.String(), path, secret))

	case reflect.Struct:
		// Unexported fields are carried over untouched
		dst.Set(src)
		r.copyFields(dst, src, path, secret)

	case reflect.Ptr:
		if src.IsNil() {
			return
		}
		p := reflect.New(src.Type().Elem())
		r.copyValue(p.Elem(), src.Elem(), path, secret)
		dst.Set(p)

	case reflect.Slice:
		if src.IsNil() {
			return
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			r.copyValue(s.Index(i), src.Index(i), normalize.Index(path, i), secret)
		}
		dst.Set(s)

	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			r.copyValue(dst.Index(i), src.Index(i), normalize.Index(path, i), secret)
		}

	case reflect.Map:
		if src.IsNil() {
			return
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			elem := reflect.New(src.Type().Elem()).Elem()
			r.copyValue(elem, iter.Value(), normalize.Index(path, iter.Key()), secret)
			m.SetMapIndex(iter.Key(), elem)
		}
		dst.Set(m)

	case reflect.Interface:
		if src.IsNil() {
			return
		}
		inner := src.Elem()
		elem := reflect.New(inner.Type()).Elem()
		r.copyValue(elem, inner, path, secret)
		dst.Set(elem)

	default:
		dst.Set(src)
	}
}

// copyFields replaces the exported fields of dst, which already holds a
// shallow copy of src, with substituted deep copies.
func (r *Resolver) copyFields(dst, src reflect.Value, path string, secret bool) {
	t := src.Type()
	for i := 0; i < src.NumField(); i++ {
		field := t.Field(i)
		cfg := tag.Of(field)
		if cfg.Skip {
			continue
		}

		switch {
		case field.IsExported():
			fieldDst := dst.Field(i)
			fieldDst.Set(reflect.Zero(field.Type))
			r.copyValue(fieldDst, src.Field(i), normalize.Join(path, field.Name), secret || cfg.Secret)

		case field.Anonymous && field.Type.Kind() == reflect.Struct:
			// Promoted fields of an unexported embedded struct are settable and
			// decoded by yaml.v3 (",inline"); they keep the parent's path.
			r.copyFields(dst.Field(i), src.Field(i), path, secret || cfg.Secret)
		}
	}
}

// expand scans s for ${...} references.
func (r *Resolver) expand(s, path string, secret bool) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case rest[0] != '$':
			b.WriteByte(rest[0])
			i++
		case strings.HasPrefix(rest, "$${"):
			b.WriteString("${")
			i += 3
		case strings.HasPrefix(rest, "${"):
			end := strings.IndexByte(rest[2:], '}')
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			expr := rest[2 : 2+end]
			b.WriteString(r.resolve(expr, path, secret))
			i += 2 + end + 1
		default:
			b.WriteByte('$')
			i++
		}
	}

	return b.String()
}

// resolve evaluates the body of a single ${...} reference.
func (r *Resolver) resolve(expr, path string, secret bool) string {
	name, fallback, hasFallback := strings.Cut(expr, ":-")
	if !validName(name) {
		return "${" + expr + "}"
	}

	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	log := appprops.Logger()
	value, ok := lookup(name)
	switch {
	case ok && value != "":
	case hasFallback:
		value = fallback
	case !ok:
		log.Warn().Str("field", path).Str("var", name).Msg("environment variable not set")
	}

	shown := value
	if secret {
		shown = redacted
	}
	log.Debug().Str("field", path).Str("var", name).Str("value", shown).Msg("substituted environment variable")

	return value
}

// validName accepts POSIX-style variable names.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
