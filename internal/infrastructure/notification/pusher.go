package notification

import (
	apptodo "github.com/todoapp/backend/internal/application/todo"
	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/infrastructure/websocket"
)

// Broadcaster 广播能力，由 websocket.Hub 实现
type Broadcaster interface {
	Broadcast(data interface{}) error
}

// WebSocketPusher WebSocket 推送实现
type WebSocketPusher struct {
	hub Broadcaster
}

// NewWebSocketPusher 创建 WebSocket 推送器
func NewWebSocketPusher(hub *websocket.Hub) *WebSocketPusher {
	return &WebSocketPusher{hub: hub}
}

// Push 推送待办变更事件到所有在线客户端
func (p *WebSocketPusher) Push(event todo.Event) error {
	return p.hub.Broadcast(apptodo.ToEventDTO(event))
}

// 编译时检查接口实现
var _ apptodo.Pusher = (*WebSocketPusher)(nil)
