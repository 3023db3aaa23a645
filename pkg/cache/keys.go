package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Hash returns the hex SHA-256 digest of data. File cache entries and
// config fingerprints are both named by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey names v under prefix by digesting its JSON form. Values that do
// not marshal are digested in their Go syntax form instead.
func hashKey(prefix string, v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = fmt.Appendf(nil, "%#v", v)
	}
	return prefix + ":" + Hash(data)
}

// ArtifactKeyOpts are the render options that change a demo's output.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	DPI         float64 `json:"dpi,omitempty"`
	Transparent bool    `json:"transparent,omitempty"`
	Legend      bool    `json:"legend,omitempty"`
	Columns     int     `json:"ncol,omitempty"`
	Config      string  `json:"config,omitempty"`
}

// ArtifactKey returns the cache key of a rendered demo.
func ArtifactKey(demo string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+demo, opts)
}

// Scoped wraps a cache so that every key is prefixed.
type Scoped struct {
	Cache
	prefix string
}

// NewScoped returns c with all keys prefixed by prefix.
func NewScoped(c Cache, prefix string) *Scoped {
	if c == nil {
		c = NewNullCache()
	}
	return &Scoped{Cache: c, prefix: prefix}
}

// Get retrieves a value from the wrapped cache.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.Cache.Get(ctx, s.prefix+key)
}

// Set stores a value in the wrapped cache.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.Cache.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a value from the wrapped cache.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.Cache.Delete(ctx, s.prefix+key)
}
