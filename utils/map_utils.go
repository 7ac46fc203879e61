package utils

// Lookup returns m[key] as a T, or the zero value when the key is absent
// or holds another type
func Lookup[T any](m map[string]interface{}, key string) T {
	v, _ := m[key].(T)
	return v
}
