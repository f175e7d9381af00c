package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/observability"
)

// unobservedRoutes are scraped or polled often enough to drown real traffic.
var unobservedRoutes = map[string]bool{
	"/metrics":     true,
	"/healthcheck": true,
}

// Metrics records request counts and latency per route template. Requests
// that match no route share the "unmatched" label.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if unobservedRoutes[route] {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
