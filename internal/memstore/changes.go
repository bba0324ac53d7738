package memstore

import (
	"maps"
	"slices"
)

// changes buffers the writes of one transaction to a table. They stay
// invisible to other transactions until apply is called on commit.
type changes[T any] struct {
	put map[int]T
	del map[int]bool
}

func newChanges[T any]() changes[T] {
	return changes[T]{
		put: make(map[int]T),
		del: make(map[int]bool),
	}
}

func (c changes[T]) get(committed map[int]T, id int) (T, bool) {
	var zero T

	if c.del[id] {
		return zero, false
	}

	if v, ok := c.put[id]; ok {
		return v, true
	}

	v, ok := committed[id]
	return v, ok
}

func (c changes[T]) set(id int, v T) {
	delete(c.del, id)
	c.put[id] = v
}

func (c changes[T]) remove(id int) {
	delete(c.put, id)
	c.del[id] = true
}

// rows returns the merged view ordered by id.
func (c changes[T]) rows(committed map[int]T) []T {
	ids := make(map[int]struct{}, len(committed)+len(c.put))
	for id := range committed {
		ids[id] = struct{}{}
	}
	for id := range c.put {
		ids[id] = struct{}{}
	}

	sorted := slices.Sorted(maps.Keys(ids))
	result := make([]T, 0, len(sorted))

	for _, id := range sorted {
		if v, ok := c.get(committed, id); ok {
			result = append(result, v)
		}
	}

	return result
}

func (c changes[T]) dirty() bool {
	return len(c.put) > 0 || len(c.del) > 0
}

func (c changes[T]) apply(committed map[int]T) {
	for id := range c.del {
		delete(committed, id)
	}

	for id, v := range c.put {
		committed[id] = v
	}
}
