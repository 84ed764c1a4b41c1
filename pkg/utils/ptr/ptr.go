// Package ptr has tiny helpers for pointer-typed optional config fields.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T { return &v }

// Deref returns the pointed-to value, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}
