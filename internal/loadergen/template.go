package loadergen

// fileTemplate renders one generated file. Output is gofmt'd afterwards, so
// only blank lines between declarations matter here.
const fileTemplate = `// Code generated by appprops-gen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .StdImports}}
	{{.}}
{{- end}}
{{range .Imports}}
	{{.}}
{{- end}}
)
{{range .Loaders}}
//go:embed {{quote .Src}}
var {{.Source}} string
{{if not .RawDeclared}}
// {{.Raw}} is {{.Target}} before environment substitution.
type {{.Raw}} {{.Target}}
{{end}}
// {{.Error}} is returned by {{.Loader}} when {{.Src}} cannot be decoded.
type {{.Error}} struct {
	Kind  appprops.ErrorKind
	Src   string
	Err   error
	Trace []byte
}

func (e *{{.Error}}) Error() string {
	return fmt.Sprintf("{{.Target}}: %s %s: %v", e.Kind, e.Src, e.Err)
}

func (e *{{.Error}}) Unwrap() error {
	return e.Err
}

func (e *{{.Error}}) Is(target error) bool {
	return e.Kind.Is(target)
}

// {{.Loader}} decodes the embedded {{.Src}} into {{.Target}}, resolving
// ${VAR} references against the process environment.
func {{.Loader}}() ({{.Target}}, error) {
	appprops.Logger().Info().
		Str("type", {{quote .Target}}).
		Str("src_path", {{quote .Src}}).
		Msg("using source")

	var raw {{.Raw}}
	if err := {{decode .}}; err != nil {
		return {{.Target}}{}, &{{.Error}}{
			Kind:  appprops.KindDeserialize,
			Src:   {{quote .Src}},
			Err:   err,
			Trace: appprops.CaptureTrace(),
		}
	}

	resolved := envsubst.Replace(raw, envsubst.Metadata{Secret: false})
	return {{convert .}}, nil
}

// Load implements appprops.Loadable.
func ({{.Target}}) Load() ({{.Target}}, error) {
	return {{.Loader}}()
}
{{end -}}
`
