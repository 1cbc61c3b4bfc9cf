// Package server exposes the acquisition loop over HTTP: the latest
// reading as JSON, a websocket live feed and Prometheus metrics.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// New wires the routes. metrics may be nil.
func New(status *Status, hub *Hub, metrics http.Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/temperature", func(c *gin.Context) {
		snap, ok := status.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no reading yet"})
			return
		}
		c.JSON(http.StatusOK, snap)
	})

	r.GET("/ws", hub.handleWebSocket)

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
