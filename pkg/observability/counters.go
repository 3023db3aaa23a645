package observability

import (
	"context"
	"sync"
	"time"
)

// Counters implements every hook interface by counting events.
// It is safe for concurrent use.
type Counters struct {
	mu   sync.Mutex
	snap Snapshot
}

// Snapshot is a copy of the counters at one point in time.
type Snapshot struct {
	Renders       int            `json:"renders"`
	RenderErrors  int            `json:"render_errors"`
	RenderedBytes int            `json:"rendered_bytes"`
	RenderTime    time.Duration  `json:"render_time_ns"`
	CacheHits     int            `json:"cache_hits"`
	CacheMisses   int            `json:"cache_misses"`
	Requests      int            `json:"requests"`
	Statuses      map[int]int    `json:"statuses"`
	Formats       map[string]int `json:"formats"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{snap: Snapshot{Statuses: map[int]int{}, Formats: map[string]int{}}}
}

func (c *Counters) OnRenderStart(context.Context, string, string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _, format string, size int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.snap.RenderErrors++
		return
	}
	c.snap.Renders++
	c.snap.RenderedBytes += size
	c.snap.RenderTime += d
	c.snap.Formats[format]++
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.snap.CacheHits++
	c.mu.Unlock()
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.snap.CacheMisses++
	c.mu.Unlock()
}

func (c *Counters) OnCacheSet(context.Context, string, int) {}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.mu.Lock()
	c.snap.Requests++
	c.snap.Statuses[status]++
	c.mu.Unlock()
}

// Snapshot returns a copy of the current counts.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.Statuses = make(map[int]int, len(c.snap.Statuses))
	for k, v := range c.snap.Statuses {
		s.Statuses[k] = v
	}
	s.Formats = make(map[string]int, len(c.snap.Formats))
	for k, v := range c.snap.Formats {
		s.Formats[k] = v
	}
	return s
}

var (
	_ RenderHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
	_ HTTPHooks   = (*Counters)(nil)
)
