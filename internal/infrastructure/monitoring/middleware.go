package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records request count, latency and body sizes per route
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// read before later middleware rewrites it (gzip bodies become -1)
		reqSize := nonNegative(c.Request.ContentLength)

		c.Next()

		metrics.RecordHTTPRequest(
			c.Request.Method,
			routeLabel(c),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			reqSize,
			nonNegative(int64(c.Writer.Size())),
		)
	}
}

// routeLabel is the matched route template, so /last?url=... and unknown
// paths cannot blow up label cardinality
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
