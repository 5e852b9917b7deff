package annotation

import (
	"path"
	"strings"
)

// Format selects the decoder emitted for a source document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "yaml"
	}
}

// FormatFor infers the format from the document's extension.
// Anything that is not .json or .toml is decoded as YAML.
func FormatFor(src string) Format {
	switch strings.ToLower(path.Ext(src)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// runtimeImports are the package names every generated file imports.
var runtimeImports = []string{"fmt", "appprops", "envsubst"}

// ImportNames returns the package names a generated file declares at file
// scope when it holds a loader in format f. A package-level declaration with
// one of these names would not compile next to it.
func (f Format) ImportNames() []string {
	names := append([]string(nil), runtimeImports...)
	switch f {
	case FormatJSON:
		return append(names, "json", "jsonc")
	case FormatTOML:
		return append(names, "toml")
	default:
		return append(names, "yaml")
	}
}
