package api

import (
	"time"

	"goverdict/internal"
	"goverdict/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID propagates or assigns an X-Request-ID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs each request and counts it by route pattern
func requestLogger(logger *internal.Logger, rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		rec.ObserveRequest(c.Request.Method, route, status)

		if status >= 500 {
			logger.Error("%s %s -> %d (%s) request_id=%s errors=%s",
				c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString("requestID"), c.Errors.String())
			return
		}
		logger.Debug("%s %s -> %d (%s) request_id=%s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString("requestID"))
	}
}
