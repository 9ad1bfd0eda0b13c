package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/infrastructure/log"
)

const (
	serverName    = "todo-service"
	serverVersion = "0.1.0"
)

// TodoService 待办用例，由 application/todo.Service 实现
type TodoService interface {
	List(ctx context.Context) ([]*todo.Todo, error)
	Create(ctx context.Context, text string) (*todo.Todo, error)
	Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error)
	Delete(ctx context.Context, id string) error
}

// MCPServer MCP 服务器
type MCPServer struct {
	server  *mcp.Server
	handler http.Handler
	service TodoService
	logger  *slog.Logger
}

// NewServer 创建 MCP 服务器并注册待办工具
func NewServer(service TodoService) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil, // 使用默认能力
	)

	s := &MCPServer{
		server:  server,
		service: service,
		logger:  log.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_todos",
		Description: "List all todos, newest first. No parameters required. Returns: todos array with _id, text, completed and created_at.",
	}, s.listTodosTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_todo",
		Description: "Create a new todo. Parameters: text (string, required) - non-empty todo text. Returns: the created todo with a server-generated _id and completed=false.",
	}, s.createTodoTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_todo",
		Description: "Partially update a todo. Parameters: id (string, required); text (string, optional, non-empty); completed (bool, optional). At least one of text or completed must be provided. Returns: the updated todo.",
	}, s.updateTodoTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo permanently. Parameters: id (string, required). Returns: confirmation message.",
	}, s.deleteTodoTool)

	s.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			return server
		},
		nil, // SSEOptions，使用默认值
	)

	return s
}

// Server 底层 MCP Server
func (s *MCPServer) Server() *mcp.Server {
	return s.server
}

// GetHandler SSE 处理器
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}
