package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	youtube := r.Group("/api/youtube")
	{
		youtube.GET("/tech", handler.GetVideos)
		youtube.GET("/tech.rss", handler.GetVideosRSS)
		youtube.GET("/channels", handler.ListChannels)
	}

	r.GET("/health", handler.GetHealth)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "Tube Comb",
			"version":     handler.version,
			"description": "Aggregated, deduplicated feed of recent videos from a fixed set of channels",
			"endpoints": map[string]string{
				"videos":   "/api/youtube/tech?limit=<1-200>&source=<channel,...>",
				"rss":      "/api/youtube/tech.rss",
				"channels": "/api/youtube/channels",
				"health":   "/health",
			},
			"documentation": "https://github.com/lysyi3m/tube-comb",
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.NoMethod(handler.MethodNotAllowed)
}

// The endpoints are public and read-only
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET")
		c.Next()
	}
}
