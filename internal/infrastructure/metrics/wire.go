package metrics

import (
	"github.com/google/wire"

	"github.com/todoapp/backend/internal/infrastructure/storage"
	"github.com/todoapp/backend/internal/infrastructure/websocket"
)

// ProvideMetrics 使用连接池与 Hub 创建指标
func ProvideMetrics(pool *storage.Pool, hub *websocket.Hub) *Metrics {
	return NewMetrics(NewRegistry(), pool, hub)
}

// ProviderSet 指标 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideMetrics,
)
