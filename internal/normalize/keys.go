// Package normalize builds the dotted key paths shown in dump output and in
// substitution log events.
package normalize

import "fmt"

// Join appends key to a dotted path.
// Examples:
//   - Join("database", "host") → "database.host"
//   - Join("", "host") → "host"
//   - Join("database", "") → "database"
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

// Index appends an element selector for a slice index or map key.
// Examples:
//   - Index("tags", 2) → "tags[2]"
//   - Index("limits", "burst") → "limits[burst]"
func Index(path string, key any) string {
	return fmt.Sprintf("%s[%v]", path, key)
}
