package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error" example:"Todo not found"`
}

// MessageResponse 消息响应
type MessageResponse struct {
	Message string `json:"message" example:"Todo deleted successfully"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}

// JSON 直接输出数据，不做信封包装
func JSON(c *gin.Context, httpCode int, data interface{}) {
	c.JSON(httpCode, data)
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{Error: message})
}

// Message 消息响应
func Message(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, MessageResponse{Message: message})
}
