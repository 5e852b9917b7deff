// Package loadergen renders the Go source of generated loaders.
package loadergen

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/Azhovan/appprops/internal/annotation"
)

// Header marks files written by the generator. The driver uses it to skip
// previous output when re-parsing a package.
const Header = "// Code generated by appprops-gen. DO NOT EDIT."

const (
	runtimeImport  = `"github.com/Azhovan/appprops"`
	envsubstImport = `"github.com/Azhovan/appprops/envsubst"`
)

// decoders maps each format to its imports and decode expression.
// JSON sources may carry comments and trailing commas (jsonc).
var decoders = map[annotation.Format]struct {
	std     []string
	imports []string
	call    string
}{
	annotation.FormatYAML: {
		imports: []string{`"gopkg.in/yaml.v3"`},
		call:    "yaml.Unmarshal([]byte(%s), &raw)",
	},
	annotation.FormatTOML: {
		imports: []string{`"github.com/pelletier/go-toml/v2"`},
		call:    "toml.Unmarshal([]byte(%s), &raw)",
	},
	annotation.FormatJSON: {
		std:     []string{`"encoding/json"`},
		imports: []string{`"github.com/tidwall/jsonc"`},
		call:    "json.Unmarshal(jsonc.ToJSON([]byte(%s)), &raw)",
	},
}

var tmpl = template.Must(template.New("loader").Funcs(template.FuncMap{
	"quote": strconv.Quote,
	"decode": func(d annotation.Descriptor) string {
		return fmt.Sprintf(decoders[d.Format].call, d.Source)
	},
	"convert": func(d annotation.Descriptor) string {
		if d.RawDeclared {
			return "resolved.Into()"
		}
		return fmt.Sprintf("%s(resolved)", d.Target)
	},
}).Parse(fileTemplate))

// ErrNoLoaders is returned when there is nothing to generate.
var ErrNoLoaders = errors.New("no annotated types")

// templateData is the input of fileTemplate.
type templateData struct {
	Package    string
	StdImports []string
	Imports    []string
	Loaders    []annotation.Descriptor
}

// Generate renders a complete, gofmt'd Go file declaring the loaders for
// descs in package pkg. filename is used only in error messages.
func Generate(filename, pkg string, descs []annotation.Descriptor) ([]byte, error) {
	if len(descs) == 0 {
		return nil, ErrNoLoaders
	}

	data := templateData{
		Package:    pkg,
		StdImports: []string{`_ "embed"`, `"fmt"`},
		Imports:    []string{runtimeImport, envsubstImport},
		Loaders:    descs,
	}

	seen := make(map[annotation.Format]bool)
	for _, d := range descs {
		if seen[d.Format] {
			continue
		}
		seen[d.Format] = true

		dec := decoders[d.Format]
		data.StdImports = append(data.StdImports, dec.std...)
		data.Imports = append(data.Imports, dec.imports...)
	}

	// Import order is left to the formatter.
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w\n%s", filename, err, buf.Bytes())
	}
	return out, nil
}
