package wire

import (
	"log/slog"

	"github.com/todoapp/backend/internal/infrastructure/storage"
	"github.com/todoapp/backend/internal/infrastructure/websocket"
	"github.com/todoapp/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	MCPServer  *interfaces.MCPServer
	wsHub      *websocket.Hub
	pool       *storage.Pool
	logger     *slog.Logger
	errCh      chan error
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	wsHub *websocket.Hub,
	pool *storage.Pool,
	logger *slog.Logger,
) *App {
	return &App{
		HTTPServer: httpServer,
		MCPServer:  mcpServer,
		wsHub:      wsHub,
		pool:       pool,
		logger:     logger,
		errCh:      make(chan error, 1),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting todo service")

	if !a.pool.Available() {
		a.logger.Warn("Database unavailable, serving in degraded mode")
	}

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
			a.errCh <- err
		}
	}()

	// MCP 服务器通过 HTTP Handler 提供服务，已在 HTTP 服务器中注册 /mcp/sse 端点
	a.logger.Info("Todo service started successfully")
	return nil
}

// Errors HTTP 服务器异常退出时收到错误
func (a *App) Errors() <-chan error {
	return a.errCh
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping todo service")

	var stopErr error
	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		stopErr = err
	}

	a.wsHub.Stop()

	// 关闭数据库连接
	a.pool.Close()

	a.logger.Info("Todo service stopped")
	return stopErr
}
