// Package ptr models optional values as pointers: nil is absent, non-nil is present.
package ptr

// Of returns a pointer to a copy of value
func Of[T any](value T) *T {
	return &value
}

// Value returns the pointed value, or the zero value when p is absent
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Or returns the pointed value, or fallback when p is absent
func Or[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Copy returns a new pointer holding the same value, or nil when p is absent
func Copy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Of(*p)
}

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int64 return a pointer to the input value
func Int64(value int64) *int64 {
	return &value
}
