package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osmoflow/rosim/pkg/log"
)

// New wires the gin engine with the API routes and middlewares.
func New(h *Handler, logger log.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.POST("/api/simulate", h.Simulate)
	r.GET("/api/products", h.Products)
	r.GET("/api/history", h.History)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func requestLogger(logger log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.Any("duration", time.Since(start)))
	}
}
