package cache

import (
	"context"
	"time"
)

// NullCache satisfies Cache while keeping nothing. plotkit falls back to it
// for --no-cache and when the cache directory cannot be resolved, so every
// render runs the figure pipeline.
type NullCache struct{}

// NewNullCache returns a cache that misses on every lookup.
func NewNullCache() NullCache { return NullCache{} }

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
