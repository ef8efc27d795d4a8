// Package collections holds small generic slice helpers.
package collections

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Tail returns the last n items. The result shares storage with items.
func Tail[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

// Ring keeps the most recent Cap items pushed to it.
type Ring[T any] struct {
	Cap   int
	items []T
}

// Push appends item, dropping the oldest once Cap is reached.
func (r *Ring[T]) Push(item T) {
	r.items = append(r.items, item)
	if r.Cap > 0 && len(r.items) > r.Cap {
		r.items = append(r.items[:0], r.items[len(r.items)-r.Cap:]...)
	}
}

// Read returns a copy of the items, oldest first.
func (r *Ring[T]) Read() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Len reports the number of items held.
func (r *Ring[T]) Len() int {
	return len(r.items)
}
