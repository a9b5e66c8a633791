package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

// Metrics HTTP请求指标，path使用路由模板避免标签基数膨胀
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		start := time.Now()

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
