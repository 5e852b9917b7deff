package annotation

import (
	"go/ast"
	"go/parser"
	"go/token"
	"maps"
	"slices"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pkgDir = "/src/app"

// parseInput parses sources (file name → content) into an Input backed by
// an in-memory filesystem holding docs (relative path → content).
func parseInput(t *testing.T, sources map[string]string, docs map[string]string) Input {
	t.Helper()

	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range slices.Sorted(maps.Keys(sources)) {
		f, err := parser.ParseFile(fset, name, sources[name], parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
	}

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(pkgDir, 0o755))
	for name, content := range docs {
		require.NoError(t, afero.WriteFile(fsys, pkgDir+"/"+name, []byte(content), 0o644))
	}

	return Input{Fset: fset, Files: files, Dir: pkgDir, FS: fsys}
}

func extractOne(t *testing.T, src string, docs map[string]string) ([]Descriptor, error) {
	t.Helper()
	return Extract(parseInput(t, map[string]string{"settings.go": src}, docs))
}

func requireDiagnostic(t *testing.T, err error, typeName, contains string) Diagnostic {
	t.Helper()
	require.Error(t, err)

	var errs *Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs.Diagnostics, 1, err.Error())

	d := errs.Diagnostics[0]
	assert.Equal(t, typeName, d.Type)
	assert.Contains(t, d.Message, contains)
	return d
}

func TestExtract_Valid(t *testing.T) {
	src := `package app

//appprops:load src=settings.yaml
type Settings struct {
	Timeout string ` + "`yaml:\"timeout\"`" + `
}
`
	descs, err := extractOne(t, src, map[string]string{"settings.yaml": `timeout: "${TIMEOUT_MS}"`})
	require.NoError(t, err)
	require.Len(t, descs, 1)

	d := descs[0]
	assert.Equal(t, "Settings", d.Target)
	assert.Equal(t, "RawSettings", d.Raw)
	assert.Equal(t, "SettingsError", d.Error)
	assert.Equal(t, "settingsSource", d.Source)
	assert.Equal(t, "LoadSettings", d.Loader)
	assert.Equal(t, "settings.yaml", d.Src)
	assert.Equal(t, FormatYAML, d.Format)
	assert.False(t, d.RawDeclared)
	assert.Equal(t, "settings.go", d.Pos.Filename)
	assert.Equal(t, 4, d.Pos.Line)
	assert.Equal(t, 6, d.Pos.Column)
}

func TestExtract_QuotedAndNestedPaths(t *testing.T) {
	src := `package app

// Settings is documented.
//
//appprops:load src="conf/my settings.toml"
type Settings struct{}

type (
	// Other is grouped.
	//appprops:load src=` + "`other.json`" + `
	Other struct{}

	Plain struct{}
)
`
	descs, err := extractOne(t, src, map[string]string{
		"conf/my settings.toml": `name = "x"`,
		"other.json":            `{}`,
	})
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, "conf/my settings.toml", descs[0].Src)
	assert.Equal(t, FormatTOML, descs[0].Format)
	assert.Equal(t, "Other", descs[1].Target)
	assert.Equal(t, FormatJSON, descs[1].Format)
}

func TestExtract_NoAnnotations(t *testing.T) {
	descs, err := extractOne(t, "package app\n\n// Plain config.\ntype Plain struct{}\n", nil)
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestExtract_UserDeclaredRaw(t *testing.T) {
	src := `package app

//appprops:load src=settings.yaml
type Settings struct{ Port int }

type RawSettings struct{ Port string }

func (r *RawSettings) Into() Settings { return Settings{} }
`
	descs, err := extractOne(t, src, map[string]string{"settings.yaml": "port: 1"})
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.True(t, descs[0].RawDeclared)
}

func TestExtract_Failures(t *testing.T) {
	docs := map[string]string{
		"settings.yaml": "a: b",
		"binary.yaml":   "\xff\xfe",
		"dir/x.yaml":    "a: b",
	}

	tests := []struct {
		name     string
		src      string
		typeName string
		contains string
	}{
		{
			name:     "missing src",
			src:      "//appprops:load\ntype Settings struct{}",
			typeName: "Settings",
			contains: "missing required option src",
		},
		{
			name:     "empty src",
			src:      "//appprops:load src=\"\"\ntype Settings struct{}",
			typeName: "Settings",
			contains: "must not be empty",
		},
		{
			name:     "unknown option",
			src:      "//appprops:load src=settings.yaml secret=true\ntype Settings struct{}",
			typeName: "Settings",
			contains: `unknown option "secret"`,
		},
		{
			name:     "typo of src",
			src:      "//appprops:load scr=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: `unknown option "scr"`,
		},
		{
			name:     "duplicate src",
			src:      "//appprops:load src=settings.yaml src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "duplicate option src",
		},
		{
			name:     "option without value",
			src:      "//appprops:load src\ntype Settings struct{}",
			typeName: "Settings",
			contains: "has no value",
		},
		{
			name:     "malformed quoting",
			src:      "//appprops:load src=\"settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "malformed quoted value",
		},
		{
			name:     "unknown verb",
			src:      "//appprops:generate src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: `unknown directive "//appprops:generate"`,
		},
		{
			name:     "two directives",
			src:      "//appprops:load src=settings.yaml\n//appprops:load src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "more than one appprops directive",
		},
		{
			name:     "missing document",
			src:      "//appprops:load src=missing.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "source document missing.yaml not found",
		},
		{
			name:     "directory",
			src:      "//appprops:load src=dir\ntype Settings struct{}",
			typeName: "Settings",
			contains: "is a directory",
		},
		{
			name:     "not utf8",
			src:      "//appprops:load src=binary.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "not valid UTF-8",
		},
		{
			name:     "parent directory",
			src:      "//appprops:load src=../settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "inside the package directory",
		},
		{
			name:     "absolute path",
			src:      "//appprops:load src=/etc/settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "inside the package directory",
		},
		{
			name:     "glob",
			src:      "//appprops:load src=*.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "not a pattern",
		},
		{
			name:     "not a struct",
			src:      "//appprops:load src=settings.yaml\ntype Settings map[string]string",
			typeName: "Settings",
			contains: "must be a struct",
		},
		{
			name:     "alias",
			src:      "type base struct{}\n\n//appprops:load src=settings.yaml\ntype Settings = base",
			typeName: "Settings",
			contains: "not an alias",
		},
		{
			name:     "generic",
			src:      "//appprops:load src=settings.yaml\ntype Settings[T any] struct{ V T }",
			typeName: "Settings",
			contains: "generic types are not supported",
		},
		{
			name:     "unexported",
			src:      "//appprops:load src=settings.yaml\ntype settings struct{}",
			typeName: "settings",
			contains: "must be exported",
		},
		{
			name:     "raw without Into",
			src:      "//appprops:load src=settings.yaml\ntype Settings struct{}\n\ntype RawSettings struct{}",
			typeName: "Settings",
			contains: "RawSettings is declared but has no Into() Settings method",
		},
		{
			name:     "error type collision",
			src:      "//appprops:load src=settings.yaml\ntype Settings struct{}\n\ntype SettingsError struct{}",
			typeName: "Settings",
			contains: "SettingsError collides",
		},
		{
			name:     "loader collision",
			src:      "//appprops:load src=settings.yaml\ntype Settings struct{}\n\nfunc LoadSettings() {}",
			typeName: "Settings",
			contains: "LoadSettings collides",
		},
		{
			name:     "method collision",
			src:      "//appprops:load src=settings.yaml\ntype Settings struct{}\n\nfunc (Settings) Load() {}",
			typeName: "Settings",
			contains: "Settings.Load collides",
		},
		{
			name:     "field collision",
			src:      "//appprops:load src=settings.yaml\ntype Settings struct{ Load bool }",
			typeName: "Settings",
			contains: "Settings.Load collides",
		},
		{
			name:     "source variable collision",
			src:      "var settingsSource = 1\n\n//appprops:load src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "settingsSource collides",
		},
		{
			name:     "package-level func shadows yaml import",
			src:      "func yaml() string { return \"\" }\n\n//appprops:load src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "package-level yaml collides with the yaml package",
		},
		{
			name:     "package-level var shadows fmt import",
			src:      "var fmt = 1\n\n//appprops:load src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "package-level fmt collides",
		},
		{
			name:     "package-level type shadows envsubst import",
			src:      "type envsubst struct{}\n\n//appprops:load src=settings.yaml\ntype Settings struct{}",
			typeName: "Settings",
			contains: "package-level envsubst collides",
		},
		{
			name:     "directive on func",
			src:      "//appprops:load src=settings.yaml\nfunc Settings() {}",
			typeName: "",
			contains: "not attached to a type declaration",
		},
		{
			name:     "directive on grouped decl",
			src:      "//appprops:load src=settings.yaml\ntype (\n\tSettings struct{}\n)",
			typeName: "",
			contains: "not attached to a type declaration",
		},
		{
			name:     "directive on field",
			src:      "type Settings struct {\n\t//appprops:load src=settings.yaml\n\tA string\n}",
			typeName: "",
			contains: "not attached to a type declaration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descs, err := extractOne(t, "package app\n\n"+tt.src+"\n", docs)
			requireDiagnostic(t, err, tt.typeName, tt.contains)
			assert.Nil(t, descs, "no descriptors may be produced on failure")
		})
	}
}

func TestExtract_DiagnosticPointsAtType(t *testing.T) {
	src := "package app\n\n//appprops:load\ntype Settings struct{}\n"
	_, err := extractOne(t, src, nil)
	d := requireDiagnostic(t, err, "Settings", "missing required option src")

	assert.Equal(t, "settings.go", d.Pos.Filename)
	assert.Equal(t, 4, d.Pos.Line)
	assert.Equal(t, 6, d.Pos.Column)
	assert.Equal(t, "settings.go:4:6: Settings: missing required option src", d.String())
}

func TestExtract_CollectsAllDiagnostics(t *testing.T) {
	sources := map[string]string{
		"a.go": "package app\n\n//appprops:load\ntype A struct{}\n",
		"b.go": "package app\n\n//appprops:load src=nope.yaml\ntype B struct{}\n\n//appprops:load src=ok.yaml\ntype C struct{}\n",
	}
	descs, err := Extract(parseInput(t, sources, map[string]string{"ok.yaml": "x: 1"}))
	require.Error(t, err)
	assert.Nil(t, descs)

	var errs *Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs.Diagnostics, 2)
	assert.Equal(t, "A", errs.Diagnostics[0].Type)
	assert.Equal(t, "B", errs.Diagnostics[1].Type)
	assert.Contains(t, err.Error(), "appprops: 2 annotation errors")
}

func TestExtract_CrossTargetCollision(t *testing.T) {
	// RawFoo exists, so Foo is treated as having a user-declared raw type.
	src := `package app

//appprops:load src=a.yaml
type Foo struct{}

//appprops:load src=a.yaml
type RawFoo struct{}
`
	_, err := extractOne(t, src, map[string]string{"a.yaml": "x: 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RawFoo")
}

func TestExtract_ImportNamesDependOnFormat(t *testing.T) {
	// yaml is only imported for YAML sources
	src := `package app

func yaml() string { return "" }

//appprops:load src=feed.json
type Feed struct{}
`
	descs, err := extractOne(t, src, map[string]string{"feed.json": "{}"})
	require.NoError(t, err)
	require.Len(t, descs, 1)

	src = `package app

const jsonc = "x"

//appprops:load src=feed.json
type Feed struct{}
`
	_, err = extractOne(t, src, map[string]string{"feed.json": "{}"})
	requireDiagnostic(t, err, "Feed", "package-level jsonc collides")
}
