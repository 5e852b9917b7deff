// Package envsubst resolves ${VAR} references in the string fields of a value.
//
// Syntax:
//
//	${NAME}            value of NAME, empty (with a warning) when unset
//	${NAME:-fallback}  fallback when NAME is unset or empty
//	$${NAME}           the literal text ${NAME}
//
// Anything else, including a lone "$" or an unterminated "${", is kept as is.
//
// Example:
//
//	resolved := envsubst.Replace(raw, envsubst.Metadata{Secret: false})
package envsubst
