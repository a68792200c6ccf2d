// Package pointer helps with optional values held as pointers.
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}
