// @title Todo Service API
// @version 1.0
// @description 待办事项 REST API 服务
// @host localhost:5000
// @BasePath /
// @schemes http
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/todoapp/backend/internal/infrastructure/config"
	applog "github.com/todoapp/backend/internal/infrastructure/log"
	"github.com/todoapp/backend/internal/wire"
)

func main() {
	// .env 先于日志初始化加载，LOG_* 才能生效
	config.LoadDotEnv()

	// 初始化日志系统
	applog.Init(nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire 自动生成的初始化函数，数据库连接重试在此阶段完成
	app, cleanup, err := wire.InitializeAll(ctx)
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}
	defer cleanup()

	// 启动所有服务
	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	// 优雅关闭
	select {
	case <-ctx.Done():
	case err := <-app.Errors():
		applog.GetLogger().Error("HTTP server exited unexpectedly",
			"error", err,
		)
	}

	applog.GetLogger().Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
