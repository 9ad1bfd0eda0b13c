package handler

import (
	"net/http"

	"github.com/google/wire"

	"github.com/todoapp/backend/internal/infrastructure/websocket"
)

// ProvideEventsHandler 使用 Hub 创建事件处理器
func ProvideEventsHandler(hub *websocket.Hub) *EventsHandler {
	return NewEventsHandler(hub)
}

// ProviderSet Handler ProviderSet
var ProviderSet = wire.NewSet(
	NewTodoHandler,
	NewIndexHandler,
	ProvideEventsHandler,
)

var _ http.Handler = (*websocket.Hub)(nil)
