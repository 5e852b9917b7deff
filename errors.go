package appprops

import (
	"errors"
	"runtime/debug"
)

// ErrorKind classifies failures reported by generated loaders.
// The set is closed: a generated XError only ever carries one of these kinds.
type ErrorKind int

const (
	// KindDeserialize: the embedded document did not decode into the raw type.
	KindDeserialize ErrorKind = iota + 1
)

// ErrDeserialize matches, via errors.Is, any generated error of KindDeserialize.
var ErrDeserialize = errors.New("appprops: unable to deserialize source document")

// String returns the message fragment used by generated Error methods.
func (k ErrorKind) String() string {
	switch k {
	case KindDeserialize:
		return "unable to deserialize"
	default:
		return "unknown error"
	}
}

// Is reports whether target is the sentinel for k.
func (k ErrorKind) Is(target error) bool {
	switch k {
	case KindDeserialize:
		return target == ErrDeserialize
	default:
		return false
	}
}

// CaptureTrace returns the calling goroutine's stack.
// Generated loaders attach it to their errors as a diagnostic backtrace.
func CaptureTrace() []byte {
	return debug.Stack()
}
