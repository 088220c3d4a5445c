package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lysyi3m/tube-comb/app/feed"
)

var ErrNoChannels = errors.New("no channels configured")

type Aggregator struct {
	channels []feed.Channel
	fetcher  FetcherInterface
	parser   ParserInterface
}

func NewAggregator(channels []feed.Channel, fetcher FetcherInterface, parser ParserInterface) *Aggregator {
	return &Aggregator{
		channels: slices.Clone(channels),
		fetcher:  fetcher,
		parser:   parser,
	}
}

func (a *Aggregator) Channels() []feed.Channel {
	return slices.Clone(a.channels)
}

// Run fetches and parses every channel concurrently, then returns the
// deduplicated union sorted newest first. A failing channel contributes no
// videos; only whole-run problems are returned as errors.
func (a *Aggregator) Run(ctx context.Context) ([]feed.Video, error) {
	if len(a.channels) == 0 {
		return nil, ErrNoChannels
	}

	startedAt := time.Now()
	results := make([][]feed.Video, len(a.channels))

	var wg sync.WaitGroup
	for i, channel := range a.channels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = a.collectChannel(ctx, channel)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregation interrupted: %w", err)
	}

	var all []feed.Video
	for _, videos := range results {
		all = append(all, videos...)
	}

	videos := feed.Dedupe(all)
	slices.SortStableFunc(videos, feed.ComparePublished)

	slog.Info("Aggregation completed",
		"channels", len(a.channels),
		"duration", time.Since(startedAt),
		"total", len(all),
		"duplicates", len(all)-len(videos),
		"videos", len(videos))

	return videos, nil
}

func (a *Aggregator) collectChannel(ctx context.Context, channel feed.Channel) []feed.Video {
	data, err := a.fetcher.Run(ctx, channel)
	if err != nil {
		slog.Warn("Failed to fetch channel feed", "channel", channel.Name, "channel_id", channel.ID, "error", err)
		return nil
	}

	videos, err := a.parser.Run(data)
	if err != nil {
		slog.Warn("Failed to parse channel feed", "channel", channel.Name, "channel_id", channel.ID, "error", err)
		return nil
	}

	slog.Debug("Channel collected", "channel", channel.Name, "videos", len(videos))
	return videos
}
