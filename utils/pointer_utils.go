package utils

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NilIfEmpty turns an empty string into nil
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
