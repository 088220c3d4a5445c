package api

import (
	"context"
	"time"

	"github.com/lysyi3m/tube-comb/app/cache"
	"github.com/lysyi3m/tube-comb/app/feed"
)

type CacheInterface interface {
	GetOrRefresh(ctx context.Context) (*cache.Snapshot, bool, error)
	Peek() *cache.Snapshot
	Age() time.Duration
	TTL() time.Duration
}

type GeneratorInterface interface {
	Run(videos []feed.Video, updatedAt time.Time) (string, error)
}

var (
	_ CacheInterface     = (*cache.Cache)(nil)
	_ GeneratorInterface = (*feed.Generator)(nil)
)

type Handler struct {
	cache     CacheInterface
	generator GeneratorInterface
	filterer  *feed.Filterer
	channels  []feed.Channel
	version   string
}

// VideosResponse is the body of the aggregated videos endpoint.
type VideosResponse struct {
	Total     int          `json:"total"`
	Items     []feed.Video `json:"items"`
	Cached    bool         `json:"cached"`
	UpdatedAt string       `json:"updated_at"`
}

// ISO 8601 with milliseconds, as rendered for updated_at
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"
