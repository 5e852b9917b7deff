// Package annotation extracts loader descriptors from //appprops:load
// directives on type declarations.
//
// Example:
//
//	//appprops:load src=settings.yaml
//	type Settings struct { ... }
package annotation

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/Azhovan/appprops/internal/naming"
)

// Descriptor is everything the generator needs to emit a loader for one type.
type Descriptor struct {
	naming.Names

	Src         string         // Document path relative to the package directory (slash-separated)
	Format      Format         // Decoder inferred from Src
	Pos         token.Position // Position of the annotated type name
	RawDeclared bool           // Raw type is user-declared and converts via Into()
}

// Input is a parsed package.
type Input struct {
	Fset  *token.FileSet
	Files []*ast.File // Package files, excluding previously generated output
	Dir   string      // Package directory; Src paths resolve against it
	FS    afero.Fs    // Filesystem used to check source documents
}

// Extract returns one Descriptor per annotated type, in source order.
// Any problem yields *Errors listing every diagnostic; no descriptors are
// returned in that case.
func Extract(in Input) ([]Descriptor, error) {
	x := &extractor{
		in:       in,
		registry: declarations(in.Files),
		consumed: make(map[*ast.Comment]bool),
	}

	for _, file := range in.Files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			x.typeDecl(gen)
		}
	}

	// Directives anywhere else are misplaced.
	for _, file := range in.Files {
		for _, group := range file.Comments {
			for _, c := range group.List {
				if isDirective(c.Text) && !x.consumed[c] {
					x.fail(c.Pos(), "", "directive is not attached to a type declaration")
				}
			}
		}
	}

	if len(x.diags) > 0 {
		return nil, &Errors{Diagnostics: x.diags}
	}
	return x.descs, nil
}

type extractor struct {
	in       Input
	registry *naming.Registry
	consumed map[*ast.Comment]bool
	descs    []Descriptor
	diags    []Diagnostic
}

func (x *extractor) fail(pos token.Pos, typeName, format string, args ...any) {
	x.diags = append(x.diags, Diagnostic{
		Pos:     x.in.Fset.Position(pos),
		Type:    typeName,
		Message: fmt.Sprintf(format, args...),
	})
}

// typeDecl handles both "type X struct{}" and grouped "type ( ... )" forms.
func (x *extractor) typeDecl(gen *ast.GenDecl) {
	grouped := gen.Lparen.IsValid()

	if grouped {
		// A doc comment on "type (" cannot say which spec it annotates; leave
		// its directives unconsumed so they are reported as misplaced.
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			x.typeSpec(ts, ts.Doc)
		}
		return
	}

	if len(gen.Specs) == 1 {
		x.typeSpec(gen.Specs[0].(*ast.TypeSpec), gen.Doc)
	}
}

func (x *extractor) typeSpec(ts *ast.TypeSpec, doc *ast.CommentGroup) {
	directives := collectDirectives(doc)
	if len(directives) == 0 {
		return
	}
	for _, c := range directives {
		x.consumed[c] = true
	}

	name := ts.Name.Name
	pos := ts.Name.Pos()

	if len(directives) > 1 {
		x.fail(pos, name, "more than one appprops directive")
		return
	}

	verb, opts, err := parseDirective(directives[0].Text)
	if err != nil {
		x.fail(pos, name, "%v", err)
		return
	}
	if verb != verbLoad {
		x.fail(pos, name, "unknown directive %q (supported: %s)", directivePrefix+verb, directivePrefix+verbLoad)
		return
	}
	src, err := sourceOption(opts)
	if err != nil {
		x.fail(pos, name, "%v", err)
		return
	}

	if !ts.Name.IsExported() {
		x.fail(pos, name, "annotated type must be exported")
		return
	}
	if ts.Assign.IsValid() {
		x.fail(pos, name, "annotated type must be a type definition, not an alias")
		return
	}
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		x.fail(pos, name, "generic types are not supported")
		return
	}
	if _, ok := ts.Type.(*ast.StructType); !ok {
		x.fail(pos, name, "annotated type must be a struct")
		return
	}

	if err := x.checkSource(src); err != nil {
		x.fail(pos, name, "%v", err)
		return
	}

	format := FormatFor(src)
	for _, pkg := range format.ImportNames() {
		if x.registry.Declared(pkg) {
			x.fail(pos, name, "package-level %s collides with the %s package imported by the generated loader", pkg, pkg)
			return
		}
	}

	names := naming.For(name)
	rawDeclared := x.registry.Declared(names.Raw)
	if rawDeclared && !x.registry.Declared(naming.Method(names.Raw, "Into")) {
		x.fail(pos, name, "%s is declared but has no Into() %s method", names.Raw, name)
		return
	}

	idents := []string{names.Error, names.Source, names.Loader, names.Method}
	if !rawDeclared {
		idents = append(idents, names.Raw)
	}
	if err := x.registry.Claim(name, idents...); err != nil {
		x.fail(pos, name, "%v", err)
		return
	}

	x.descs = append(x.descs, Descriptor{
		Names:       names,
		Src:         src,
		Format:      format,
		Pos:         x.in.Fset.Position(pos),
		RawDeclared: rawDeclared,
	})
}

// checkSource verifies src is embeddable and names a readable UTF-8 file.
func (x *extractor) checkSource(src string) error {
	if !fs.ValidPath(src) || src == "." {
		return fmt.Errorf("src %q must be a relative, slash-separated path inside the package directory", src)
	}
	if strings.ContainsAny(src, "*?[\\") {
		return fmt.Errorf("src %q must name a single file, not a pattern", src)
	}

	full := filepath.Join(x.in.Dir, filepath.FromSlash(src))
	info, err := x.in.FS.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("source document %s not found", src)
		}
		return fmt.Errorf("stat source document %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("source document %s is a directory", src)
	}

	data, err := afero.ReadFile(x.in.FS, full)
	if err != nil {
		return fmt.Errorf("read source document %s: %w", src, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("source document %s is not valid UTF-8 text", src)
	}
	return nil
}

// collectDirectives returns the appprops directive lines of a doc comment.
func collectDirectives(doc *ast.CommentGroup) []*ast.Comment {
	if doc == nil {
		return nil
	}
	var out []*ast.Comment
	for _, c := range doc.List {
		if isDirective(c.Text) {
			out = append(out, c)
		}
	}
	return out
}

// declarations seeds a registry with the package's top-level identifiers,
// methods and struct fields.
func declarations(files []*ast.File) *naming.Registry {
	r := naming.NewRegistry()

	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) == 0 {
					r.Declare(d.Name.Name)
					continue
				}
				if recv := receiverName(d.Recv.List[0].Type); recv != "" {
					r.Declare(naming.Method(recv, d.Name.Name))
				}

			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						r.Declare(s.Name.Name)
						if st, ok := s.Type.(*ast.StructType); ok {
							declareFields(r, s.Name.Name, st)
						}
					case *ast.ValueSpec:
						for _, n := range s.Names {
							r.Declare(n.Name)
						}
					}
				}
			}
		}
	}

	return r
}

func declareFields(r *naming.Registry, typeName string, st *ast.StructType) {
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			// Embedded field: its name is the type name
			if name := receiverName(field.Type); name != "" {
				r.Declare(naming.Method(typeName, name))
			}
			continue
		}
		for _, n := range field.Names {
			r.Declare(naming.Method(typeName, n.Name))
		}
	}
}

// receiverName unwraps *T, T[P], pkg.T down to the type name.
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.ParenExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}
