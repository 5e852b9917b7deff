// Package naming derives the identifiers emitted for an annotated type and
// detects collisions with identifiers the package already declares.
package naming

import (
	"fmt"
	"unicode"
)

// Names holds every identifier generated for one target type.
type Names struct {
	Target string // Annotated type (e.g., "Settings")
	Raw    string // Pre-substitution mirror (e.g., "RawSettings")
	Error  string // Error type (e.g., "SettingsError")
	Source string // Embedded document variable (e.g., "settingsSource")
	Loader string // Package-level load function (e.g., "LoadSettings")
	Method string // Method on the target, qualified (e.g., "Settings.Load")
}

// For derives the generated identifiers for target.
// Examples:
//   - "Settings" → RawSettings, SettingsError, settingsSource, LoadSettings
//   - "HTTPConfig" → RawHTTPConfig, HTTPConfigError, httpConfigSource, LoadHTTPConfig
func For(target string) Names {
	return Names{
		Target: target,
		Raw:    "Raw" + target,
		Error:  target + "Error",
		Source: LowerFirst(target) + "Source",
		Loader: "Load" + target,
		Method: Method(target, "Load"),
	}
}

// Method qualifies a method or field name with its receiver type.
func Method(recv, name string) string {
	return recv + "." + name
}

// LowerFirst lowercases the leading word of an exported identifier,
// treating a run of capitals as one word.
// Examples:
//   - "Settings" → "settings"
//   - "HTTPConfig" → "httpConfig"
//   - "URL" → "url"
//   - "" → ""
func LowerFirst(name string) string {
	runes := []rune(name)

	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	switch {
	case upper == 0:
		return name
	case upper == 1 || upper == len(runes):
		// "Settings" or "URL"
	default:
		// Keep the capital that starts the next word: "HTTPConfig" → "http" + "Config"
		upper--
	}

	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// Registry tracks identifiers declared by the package and those claimed by
// generated code. It is not safe for concurrent use.
type Registry struct {
	declared map[string]bool
	claimed  map[string]string // identifier → target that claimed it
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		declared: make(map[string]bool),
		claimed:  make(map[string]string),
	}
}

// Declare records an identifier already present in the package.
// Methods and struct fields are recorded qualified (see Method).
func (r *Registry) Declare(ident string) {
	r.declared[ident] = true
}

// Declared reports whether the package declares ident.
func (r *Registry) Declared(ident string) bool {
	return r.declared[ident]
}

// Claim reserves idents for code generated on behalf of target.
// It fails on the first identifier that the package already declares or
// that another target claimed; nothing is reserved in that case.
func (r *Registry) Claim(target string, idents ...string) error {
	for _, ident := range idents {
		if r.declared[ident] {
			return fmt.Errorf("generated identifier %s collides with an existing declaration", ident)
		}
		if owner, ok := r.claimed[ident]; ok {
			return fmt.Errorf("generated identifier %s is also generated for %s", ident, owner)
		}
	}

	seen := make(map[string]bool, len(idents))
	for _, ident := range idents {
		if seen[ident] {
			return fmt.Errorf("generated identifier %s is claimed twice", ident)
		}
		seen[ident] = true
	}

	for _, ident := range idents {
		r.claimed[ident] = target
	}
	return nil
}
