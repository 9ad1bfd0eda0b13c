package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// EventsHandler 待办实时事件处理器
type EventsHandler struct {
	hub http.Handler
}

// NewEventsHandler 创建处理器，hub 负责升级并管理 WebSocket 连接
func NewEventsHandler(hub http.Handler) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream 订阅待办变更
// @Summary 订阅待办变更（WebSocket）
// @Description 升级为 WebSocket，推送 todo.created、todo.updated 与 todo.deleted 事件
// @Tags 待办
// @Success 101 {object} apptodo.EventDTO
// @Router /ws/todos [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	h.hub.ServeHTTP(c.Writer, c.Request)
}
