package aggregator

import (
	"context"

	"github.com/lysyi3m/tube-comb/app/feed"
)

// FetcherInterface retrieves one channel's raw feed document.
type FetcherInterface interface {
	Run(ctx context.Context, channel feed.Channel) ([]byte, error)
}

// ParserInterface turns one raw feed document into videos.
type ParserInterface interface {
	Run(data []byte) ([]feed.Video, error)
}

var (
	_ FetcherInterface = (*Fetcher)(nil)
	_ ParserInterface  = (*feed.Parser)(nil)
)
