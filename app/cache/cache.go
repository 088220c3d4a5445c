package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lysyi3m/tube-comb/app/feed"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 10 * time.Minute

// Snapshot is one immutable aggregation result. It is replaced, never
// modified, when the cache refreshes.
type Snapshot struct {
	Items      []feed.Video
	CapturedAt time.Time
}

type AggregatorInterface interface {
	Run(ctx context.Context) ([]feed.Video, error)
}

// Cache holds the current snapshot of the aggregated videos. Concurrent
// callers that find it expired share a single refresh.
type Cache struct {
	aggregator AggregatorInterface
	ttl        time.Duration
	now        func() time.Time
	current    atomic.Pointer[Snapshot]
	refreshes  singleflight.Group
}

func NewCache(aggregator AggregatorInterface, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		aggregator: aggregator,
		ttl:        ttl,
		now:        time.Now,
	}
}

// GetOrRefresh returns the current snapshot, refreshing it first when it is
// missing or at least ttl old. cached reports whether the snapshot was served
// without this call waiting on a refresh. A failed refresh returns an error
// even if an older snapshot exists.
func (c *Cache) GetOrRefresh(ctx context.Context) (*Snapshot, bool, error) {
	if snapshot := c.fresh(); snapshot != nil {
		return snapshot, true, nil
	}

	result, err, shared := c.refreshes.Do("refresh", func() (any, error) {
		// A refresh may have completed between the check above and this call
		if snapshot := c.fresh(); snapshot != nil {
			return snapshot, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, false, err
	}

	if shared {
		slog.Debug("Cache refresh shared between concurrent requests")
	}

	return result.(*Snapshot), false, nil
}

// Peek returns the current snapshot without refreshing, or nil when empty.
func (c *Cache) Peek() *Snapshot {
	return c.current.Load()
}

// Invalidate empties the cache so the next GetOrRefresh recomputes.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Age is the time since the current snapshot was captured, zero when empty.
func (c *Cache) Age() time.Duration {
	snapshot := c.current.Load()
	if snapshot == nil {
		return 0
	}
	return c.now().Sub(snapshot.CapturedAt)
}

func (c *Cache) fresh() *Snapshot {
	snapshot := c.current.Load()
	if snapshot == nil || c.now().Sub(snapshot.CapturedAt) >= c.ttl {
		return nil
	}
	return snapshot
}

func (c *Cache) refresh(ctx context.Context) (*Snapshot, error) {
	// The refresh is shared by every waiting request, so one caller going
	// away must not abort it for the others.
	videos, err := c.aggregator.Run(context.WithoutCancel(ctx))
	if err != nil {
		slog.Error("Cache refresh failed", "error", err)
		return nil, fmt.Errorf("failed to refresh videos: %w", err)
	}

	snapshot := &Snapshot{
		Items:      videos,
		CapturedAt: c.now(),
	}
	c.current.Store(snapshot)

	slog.Info("Cache refreshed", "videos", len(videos), "ttl", c.ttl)
	return snapshot, nil
}
