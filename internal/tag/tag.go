// Package tag parses the `appprops` and document (yaml, toml, json) struct
// tags shared by the substitution engine and the dump helpers.
package tag

import (
	"reflect"
	"strings"
)

// Name is the struct tag key read by this package.
const Name = "appprops"

// Config holds parsed directives from a struct field's `appprops` tag.
type Config struct {
	Secret bool // Value is redacted in logs and dumps (secret or secret:true)
	Skip   bool // Field is copied verbatim, never substituted ("-")
}

// Parse parses an `appprops` struct tag.
// Tag format: "directive1,directive2:value,..."
// Boolean directives can omit `:true` (e.g., "secret" == "secret:true").
func Parse(tag string) Config {
	cfg := Config{}

	if tag == "" {
		return cfg
	}
	if strings.TrimSpace(tag) == "-" {
		cfg.Skip = true
		return cfg
	}

	for _, directive := range strings.Split(tag, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		name, value, _ := strings.Cut(directive, ":")
		name = strings.TrimSpace(name)

		switch name {
		case "secret":
			// Invalid values default to true
			cfg.Secret = value != "false"
		}
	}

	return cfg
}

// Of parses the `appprops` tag of a struct field.
func Of(field reflect.StructField) Config {
	return Parse(field.Tag.Get(Name))
}

// Families lists the document tag keys Key understands, in order of preference.
var Families = []string{"yaml", "toml", "json"}

// Family returns the first tag key of Families used by any field of t, so
// keys can be reported the way the document spells them. Default: "yaml".
func Family(t reflect.Type) string {
	for _, family := range Families {
		for i := 0; i < t.NumField(); i++ {
			if _, ok := t.Field(i).Tag.Lookup(family); ok {
				return family
			}
		}
	}
	return Families[0]
}

// Key returns the document key of field under the given tag family, and
// whether the field is inlined into its parent. An empty key that is not
// inlined means the field is skipped.
//
// yaml.v3 lowercases untagged names and inlines only with ",inline";
// go-toml and encoding/json keep the Go name and flatten untagged embedded
// structs.
func Key(field reflect.StructField, family string) (key string, inline bool) {
	value := field.Tag.Get(family)
	if value == "-" {
		return "", false
	}
	name, opts, _ := strings.Cut(value, ",")

	if family == "yaml" {
		for _, opt := range strings.Split(opts, ",") {
			if opt == "inline" {
				inline = true
			}
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		return name, inline
	}

	if name == "" && field.Anonymous && isStruct(field.Type) {
		return "", true
	}
	if name == "" {
		name = field.Name
	}
	return name, false
}

// Embedded reports whether field is an embedded struct, exported or not.
// Decoders reach the promoted fields of either.
func Embedded(field reflect.StructField) bool {
	return field.Anonymous && isStruct(field.Type)
}

func isStruct(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
