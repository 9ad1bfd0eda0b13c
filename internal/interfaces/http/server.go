package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/todoapp/backend/docs" // Swagger docs
	"github.com/todoapp/backend/internal/infrastructure/config"
	"github.com/todoapp/backend/internal/infrastructure/log"
	"github.com/todoapp/backend/internal/infrastructure/metrics"
	"github.com/todoapp/backend/internal/interfaces/http/handler"
	"github.com/todoapp/backend/internal/interfaces/http/middleware"
	"github.com/todoapp/backend/internal/interfaces/mcp"
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router *gin.Engine
	cfg    *config.ServerConfig
	server *http.Server
	logger *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	todoHandler *handler.TodoHandler,
	indexHandler *handler.IndexHandler,
	eventsHandler *handler.EventsHandler,
	appMetrics *metrics.Metrics,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	logger := log.NewModuleLogger("http", "server")

	router := gin.New()
	router.Use(
		middleware.RequestContext(),
		middleware.AccessLog(logger),
	)
	if appMetrics != nil {
		router.Use(middleware.Metrics(appMetrics))
	}
	// Recovery 放在观测中间件之后，panic 产生的 500 也会被记录和计数
	router.Use(gin.Recovery())

	router.GET("/", indexHandler.Index)

	// 健康检查
	router.GET("/health", indexHandler.Health)

	// 注册路由
	api := router.Group("/api")
	{
		todos := api.Group("/todos")
		{
			todos.GET("", todoHandler.List)
			todos.POST("", todoHandler.Create)
			todos.PATCH("/:id", todoHandler.Update)
			todos.DELETE("/:id", todoHandler.Delete)
		}
	}

	// 实时事件
	router.GET("/ws/todos", eventsHandler.Stream)

	// Prometheus 指标
	if appMetrics != nil {
		router.GET("/metrics", gin.WrapH(appMetrics.Handler()))
	}

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router: router,
		cfg:    cfg,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger: logger,
	}
}

// Handler 路由处理器
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Start 启动服务器，阻塞直到服务器关闭
// 在 Start 之前调用 Shutdown 时直接返回
func (s *HTTPServer) Start() error {
	s.logger.Info("HTTP server starting",
		"addr", s.cfg.HTTPAddr,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Stop 在配置的超时时间内停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
