package api

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/tube-comb/app/cache"
	"github.com/lysyi3m/tube-comb/app/feed"
)

func NewHandler(cache CacheInterface, generator GeneratorInterface, channels []feed.Channel, version string) *Handler {
	return &Handler{
		cache:     cache,
		generator: generator,
		filterer:  feed.NewFilterer(),
		channels:  slices.Clone(channels),
		version:   version,
	}
}

func (h *Handler) GetVideos(c *gin.Context) {
	snapshot, cached, ok := h.snapshot(c)
	if !ok {
		return
	}

	items, total := h.query(c, snapshot)

	c.JSON(http.StatusOK, VideosResponse{
		Total:     total,
		Items:     items,
		Cached:    cached,
		UpdatedAt: snapshot.CapturedAt.UTC().Format(timestampFormat),
	})
}

func (h *Handler) GetVideosRSS(c *gin.Context) {
	snapshot, cached, ok := h.snapshot(c)
	if !ok {
		return
	}

	items, total := h.query(c, snapshot)

	rss, err := h.generator.Run(items, snapshot.CapturedAt)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))
	c.Header("X-Feed-Total", strconv.Itoa(total))
	c.Header("X-Feed-Cached", strconv.FormatBool(cached))
	c.Header("X-Last-Updated", snapshot.CapturedAt.Format(time.RFC3339))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"channels":  len(h.channels),
	}

	cacheInfo := map[string]interface{}{
		"ttl":       h.cache.TTL().String(),
		"populated": false,
	}
	if snapshot := h.cache.Peek(); snapshot != nil {
		cacheInfo["populated"] = true
		cacheInfo["items"] = len(snapshot.Items)
		cacheInfo["age"] = h.cache.Age().Round(time.Second).String()
		cacheInfo["updated_at"] = snapshot.CapturedAt.UTC().Format(timestampFormat)
	}
	health["cache"] = cacheInfo

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListChannels(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"channels": h.channels,
		"total":    len(h.channels),
	})
}

func (h *Handler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

// snapshot writes the failure response itself and reports ok=false when the
// aggregated videos are unavailable.
func (h *Handler) snapshot(c *gin.Context) (*cache.Snapshot, bool, bool) {
	snapshot, cached, err := h.cache.GetOrRefresh(c.Request.Context())
	if err != nil {
		slog.Error("YouTube aggregation error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch YouTube videos"})
		return nil, false, false
	}
	return snapshot, cached, true
}

func (h *Handler) query(c *gin.Context, snapshot *cache.Snapshot) ([]feed.Video, int) {
	limit := feed.ParseLimit(c.Query("limit"))
	sources := feed.ParseSources(c.Query("source"))

	items, total := h.filterer.Run(snapshot.Items, sources, limit)
	if items == nil {
		items = []feed.Video{}
	}

	return items, total
}
