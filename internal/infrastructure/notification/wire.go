package notification

import (
	"github.com/google/wire"

	apptodo "github.com/todoapp/backend/internal/application/todo"
)

// ProviderSet 通知基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	NewWebSocketPusher,
	// 接口绑定：application.Pusher -> infrastructure.WebSocketPusher
	wire.Bind(
		new(apptodo.Pusher),
		new(*WebSocketPusher),
	),
)
