package batch

import "slices"

// DefaultSize bounds the payload of a single insert statement.
const DefaultSize = 50

// Chunk splits items into contiguous, non-overlapping batches of size
// elements. Only the last batch may be shorter. A non-positive size falls
// back to DefaultSize. The returned batches share the backing array of items.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultSize
	}
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, Count(len(items), size))
	for c := range slices.Chunk(items, size) {
		chunks = append(chunks, c)
	}
	return chunks
}

// Count returns how many batches Chunk produces for length elements.
func Count(length, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	if length <= 0 {
		return 0
	}
	return (length + size - 1) / size
}
