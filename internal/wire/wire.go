//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/todoapp/backend/internal/application"
	apptodo "github.com/todoapp/backend/internal/application/todo"
	"github.com/todoapp/backend/internal/infrastructure"
	"github.com/todoapp/backend/internal/infrastructure/storage"
	"github.com/todoapp/backend/internal/interfaces"
	"github.com/todoapp/backend/internal/interfaces/http/handler"
	"github.com/todoapp/backend/internal/interfaces/mcp"
)

// InitializeAll 初始化所有服务（HTTP + MCP + WebSocket）
func InitializeAll(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：接口层依赖 -> 具体实现
		wire.Bind(new(handler.TodoService), new(*apptodo.Service)),
		wire.Bind(new(mcp.TodoService), new(*apptodo.Service)),
		wire.Bind(new(handler.Greeter), new(*storage.Pool)),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil, nil
}
