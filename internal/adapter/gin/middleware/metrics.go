package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"simple-crud-api/pkg/metrics"
)

// unmatchedRoute labels requests that hit no route, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests.
func Metrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		m.RequestStarted()
		defer func() {
			route := c.FullPath()
			if route == "" {
				route = unmatchedRoute
			}
			m.RecordHTTPRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
		}()

		c.Next()
	}
}
