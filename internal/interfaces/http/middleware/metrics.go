package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute 未匹配路由的统一标签，避免路径基数膨胀
const unmatchedRoute = "unmatched"

// Observer HTTP 指标记录器，由 metrics.Metrics 实现
type Observer interface {
	ObserveHTTP(method, path string, status int, elapsed time.Duration)
}

// Metrics 按路由模板记录请求数与耗时
func Metrics(observer Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		observer.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
