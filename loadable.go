package appprops

// Loadable is implemented by every type annotated with //appprops:load.
// The generated Load method ignores its receiver; call it on the zero value.
type Loadable[T any] interface {
	Load() (T, error)
}

// Load returns a freshly decoded and substituted T.
// Each call re-reads the embedded document; nothing is cached.
func Load[T Loadable[T]]() (T, error) {
	var zero T
	return zero.Load()
}
