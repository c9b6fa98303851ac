package response

// List returns items ready for JSON encoding.
// List endpoints return a bare array, never null.
func List[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return items
}
