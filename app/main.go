package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/tube-comb/app/aggregator"
	"github.com/lysyi3m/tube-comb/app/api"
	"github.com/lysyi3m/tube-comb/app/cache"
	"github.com/lysyi3m/tube-comb/app/cfg"
	"github.com/lysyi3m/tube-comb/app/feed"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting Tube Comb server", "version", appCfg.Version)

	channels, err := feed.NewChannelLoader(appCfg.ChannelsFile).Run()
	if err != nil {
		slog.Error("Failed to load channels", "error", err)
		os.Exit(1)
	}
	slog.Info("Channels loaded", "count", len(channels))

	// Per-request deadlines are set by the fetcher
	fetcher := aggregator.NewFetcher(&http.Client{}, appCfg.FeedURLTemplate, appCfg.UserAgent, appCfg.FetchTimeout)
	videoAggregator := aggregator.NewAggregator(channels, fetcher, feed.NewParser(appCfg.MaxItems))
	videoCache := cache.NewCache(videoAggregator, appCfg.CacheTTL)

	generator := feed.NewGenerator("Tech Videos", selfLink(appCfg), appCfg.Version)
	handler := api.NewHandler(videoCache, generator, videoAggregator.Channels(), appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening",
			"port", appCfg.Port,
			"max_items", appCfg.MaxItems,
			"fetch_timeout", appCfg.FetchTimeout,
			"cache_ttl", appCfg.CacheTTL)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Tube Comb server shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func selfLink(appCfg *cfg.Cfg) string {
	baseURL := appCfg.BaseUrl
	if baseURL == "" {
		baseURL = "http://localhost:" + appCfg.Port
	}
	return baseURL + "/api/youtube/tech.rss"
}
