package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/todoapp/backend/internal/infrastructure/log"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

// RequestContext 为每个请求生成请求 ID 并写入日志上下文
// 客户端已提供 X-Request-ID 时沿用
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		ctx := log.WithRequestID(c.Request.Context(), requestID)
		if id := c.Param("id"); id != "" {
			ctx = log.WithTodoID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
