package store

import "context"

// Getter is the lookup capability shared by every backend.
type Getter interface {
	Get(ctx context.Context, key string) (string, bool)
}

// Chain consults backends in order; the first one that has the key wins.
type Chain []Getter

// Get implements Getter.
func (c Chain) Get(ctx context.Context, key string) (string, bool) {
	for _, g := range c {
		if g == nil {
			continue
		}
		if v, ok := g.Get(ctx, key); ok {
			return v, true
		}
	}
	return "", false
}
