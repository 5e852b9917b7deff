package annotation

import (
	"fmt"
	"go/token"
	"strings"
)

// Diagnostic is a single extraction failure, positioned at the offending
// declaration (or at the directive comment when no type is involved).
type Diagnostic struct {
	Pos     token.Position
	Type    string // Annotated type name, empty for misplaced directives
	Message string
}

// String formats the diagnostic the way the Go toolchain does: "file:line:col: ...".
func (d Diagnostic) String() string {
	if d.Type == "" {
		return fmt.Sprintf("%s: %s", d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Type, d.Message)
}

// Errors aggregates every diagnostic found in a package.
type Errors struct {
	Diagnostics []Diagnostic
}

// Error formats the diagnostics as a multi-line message.
func (e *Errors) Error() string {
	if len(e.Diagnostics) == 0 {
		return "appprops: annotation errors: none"
	}

	var b strings.Builder
	if len(e.Diagnostics) == 1 {
		b.WriteString("appprops: 1 annotation error\n")
	} else {
		fmt.Fprintf(&b, "appprops: %d annotation errors\n", len(e.Diagnostics))
	}

	for _, d := range e.Diagnostics {
		fmt.Fprintf(&b, "  %s\n", d)
	}

	return strings.TrimRight(b.String(), "\n")
}
