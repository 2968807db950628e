package middleware

import (
	"time"

	"github.com/LuizVictorr/Achadoos-Amazon/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records duration and count per route template, so ids in paths do
// not explode label cardinality.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg.IncInFlight()
		defer reg.DecInFlight()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		reg.RecordHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
