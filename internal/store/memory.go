package store

import (
	"context"
	"maps"
)

// MapStore serves key/value pairs from memory. The pairs are copied in at
// construction and never change afterwards, so a MapStore is safe for
// concurrent use.
type MapStore struct {
	values map[string]string
}

// NewMapStore initialises storage with a copy of the provided values.
func NewMapStore(values map[string]string) *MapStore {
	return &MapStore{
		values: cloneValues(values),
	}
}

// Get returns the value stored under key.
func (s *MapStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Values returns a copy of the stored pairs.
func (s *MapStore) Values() map[string]string {
	return cloneValues(s.values)
}

func cloneValues(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	maps.Copy(out, src)
	return out
}
