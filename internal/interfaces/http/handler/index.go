package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/backend/internal/interfaces/http/response"
)

// Greeter 数据库问候查询，由 storage.Pool 实现
type Greeter interface {
	Greet(ctx context.Context) (string, error)
	Available() bool
}

// IndexHandler 根路径与健康检查
type IndexHandler struct {
	greeter Greeter
}

// NewIndexHandler 创建处理器
func NewIndexHandler(greeter Greeter) *IndexHandler {
	return &IndexHandler{greeter: greeter}
}

// Index 通过数据库返回问候语
// @Summary 数据库连通性问候
// @Tags 系统
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Failure 500 {object} response.ErrorResponse
// @Router / [get]
func (h *IndexHandler) Index(c *gin.Context) {
	message, err := h.greeter.Greet(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}

// Health 进程存活检查，数据库状态仅作信息
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *IndexHandler) Health(c *gin.Context) {
	database := "down"
	if h.greeter.Available() {
		database = "up"
	}

	response.JSON(c, http.StatusOK, response.HealthResponse{
		Status:   "ok",
		Database: database,
	})
}
