package appprops

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/Azhovan/appprops/internal/normalize"
	"github.com/Azhovan/appprops/internal/tag"
)

const redacted = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	asJSON bool   // Output as JSON instead of text format
	indent string // Indentation for JSON output (default: "  ")
}

// AsJSON outputs configuration as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  "). An empty indent produces compact JSON.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// Dump writes a human-readable representation of a loaded configuration.
// Keys follow the struct's yaml, toml or json tags, whichever family the
// struct uses (yaml when it carries none). Fields tagged appprops:"secret" are
// written as "***redacted***".
func Dump[T any](w io.Writer, cfg *T, opts ...DumpOption) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	config := dumpConfig{indent: "  "}
	for _, opt := range opts {
		opt(&config)
	}

	v := reflect.ValueOf(cfg).Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("config must be a struct, got %s", v.Kind())
	}

	if config.asJSON {
		return dumpAsJSON(w, v, config)
	}
	return dumpAsText(w, v)
}

// dumpAsText outputs configuration as "key.path: value" lines.
func dumpAsText(w io.Writer, v reflect.Value) error {
	var lines []string
	collectLines(v, "", false, &lines)

	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON outputs configuration as nested JSON with secret redaction.
func dumpAsJSON(w io.Writer, v reflect.Value, config dumpConfig) error {
	result := buildJSONStructure(v, false)

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// collectLines walks a struct depth-first, appending one line per leaf.
func collectLines(v reflect.Value, prefix string, secret bool, lines *[]string) {
	t := v.Type()
	family := tag.Family(t)
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() && !tag.Embedded(field) {
			continue
		}

		key, inline := tag.Key(field, family)
		if key == "" && !inline {
			continue
		}
		fieldSecret := secret || tag.Of(field).Secret
		fieldValue := indirect(v.Field(i))

		if isNested(fieldValue) {
			nested := prefix
			if !inline {
				nested = normalize.Join(prefix, key)
			}
			collectLines(fieldValue, nested, fieldSecret, lines)
			continue
		}

		*lines = append(*lines, fmt.Sprintf("%s: %s", normalize.Join(prefix, key), formatValue(fieldValue, fieldSecret)))
	}
}

// buildJSONStructure recursively builds a nested map for JSON output.
func buildJSONStructure(v reflect.Value, secret bool) map[string]any {
	result := make(map[string]any)

	t := v.Type()
	family := tag.Family(t)
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() && !tag.Embedded(field) {
			continue
		}

		key, inline := tag.Key(field, family)
		if key == "" && !inline {
			continue
		}
		fieldSecret := secret || tag.Of(field).Secret
		fieldValue := indirect(v.Field(i))

		if isNested(fieldValue) {
			nested := buildJSONStructure(fieldValue, fieldSecret)
			if inline {
				for k, val := range nested {
					result[k] = val
				}
			} else {
				result[key] = nested
			}
			continue
		}

		result[key] = formatValueForJSON(fieldValue, fieldSecret)
	}

	return result
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isNested(v reflect.Value) bool {
	return v.Kind() == reflect.Struct && v.Type() != reflect.TypeOf(time.Time{})
}

// formatValue formats a leaf value as a string, redacting secrets.
func formatValue(v reflect.Value, secret bool) string {
	if secret {
		return redacted
	}
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return "<nil>"
	}

	switch v.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q", v.String())
	case reflect.Int64:
		if d, ok := v.Interface().(time.Duration); ok {
			return d.String()
		}
		return fmt.Sprintf("%d", v.Int())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.String {
			strs := make([]string, v.Len())
			for i := 0; i < v.Len(); i++ {
				strs[i] = v.Index(i).String()
			}
			return fmt.Sprintf("[%s]", strings.Join(strs, ", "))
		}
		return fmt.Sprintf("%v", v.Interface())
	case reflect.Struct:
		if ts, ok := v.Interface().(time.Time); ok {
			return ts.Format(time.RFC3339)
		}
		return fmt.Sprintf("%v", v.Interface())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// formatValueForJSON returns a JSON-marshalable leaf value, redacting secrets.
func formatValueForJSON(v reflect.Value, secret bool) any {
	if secret {
		return redacted
	}
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return nil
	}

	switch x := v.Interface().(type) {
	case time.Duration:
		return x.String()
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return x
	}
}
