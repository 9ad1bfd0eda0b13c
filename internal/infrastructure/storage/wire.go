package storage

import (
	"context"

	"github.com/google/wire"

	"github.com/todoapp/backend/internal/infrastructure/config"
)

// ProvidePool 建立连接池，返回的 cleanup 负责关闭
func ProvidePool(ctx context.Context, cfg *config.DatabaseConfig) (*Pool, func()) {
	pool := Open(ctx, cfg)
	return pool, pool.Close
}

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvidePool,
	NewTodoRepository,
)
