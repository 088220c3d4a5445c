package aggregator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lysyi3m/tube-comb/app/feed"
)

const (
	DefaultFeedURLTemplate = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"
	DefaultTimeout         = 10 * time.Second

	acceptHeader = "application/atom+xml, application/xml;q=0.9, */*;q=0.8"
	maxBodyBytes = 5 << 20
)

type Fetcher struct {
	httpClient  *http.Client
	urlTemplate string
	userAgent   string
	timeout     time.Duration
}

func NewFetcher(httpClient *http.Client, urlTemplate, userAgent string, timeout time.Duration) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if urlTemplate == "" {
		urlTemplate = DefaultFeedURLTemplate
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Fetcher{
		httpClient:  httpClient,
		urlTemplate: urlTemplate,
		userAgent:   userAgent,
		timeout:     timeout,
	}
}

func (f *Fetcher) FeedURL(channel feed.Channel) string {
	return fmt.Sprintf(f.urlTemplate, url.QueryEscape(channel.ID))
}

// Run issues one GET for the channel's feed. Any non-2xx status, transport
// error or timeout is returned as an error.
func (f *Fetcher) Run(ctx context.Context, channel feed.Channel) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, f.FeedURL(channel), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
