package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apptodo "github.com/todoapp/backend/internal/application/todo"
	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/infrastructure/log"
)

// ListTodosInput 列表工具输入（空输入）
type ListTodosInput struct{}

// ListTodosOutput 列表工具输出
type ListTodosOutput struct {
	Todos []*apptodo.TodoDTO `json:"todos" jsonschema:"待办列表，按创建时间倒序"`
	Total int                `json:"total" jsonschema:"待办总数"`
}

// CreateTodoInput 创建工具输入
type CreateTodoInput struct {
	Text string `json:"text" jsonschema:"待办内容，不能为空"`
}

// UpdateTodoInput 更新工具输入
type UpdateTodoInput struct {
	ID        string  `json:"id" jsonschema:"待办 ID"`
	Text      *string `json:"text,omitempty" jsonschema:"新的待办内容（可选）"`
	Completed *bool   `json:"completed,omitempty" jsonschema:"是否完成（可选）"`
}

// DeleteTodoInput 删除工具输入
type DeleteTodoInput struct {
	ID string `json:"id" jsonschema:"待办 ID"`
}

// TodoOutput 单个待办输出
type TodoOutput struct {
	Todo *apptodo.TodoDTO `json:"todo" jsonschema:"待办"`
}

// DeleteTodoOutput 删除工具输出
type DeleteTodoOutput struct {
	ID      string `json:"id" jsonschema:"已删除的待办 ID"`
	Message string `json:"message" jsonschema:"结果说明"`
}

func (s *MCPServer) listTodosTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListTodosInput,
) (*mcp.CallToolResult, ListTodosOutput, error) {
	items, err := s.service.List(ctx)
	if err != nil {
		return nil, ListTodosOutput{}, s.toolError(ctx, "list_todos", err)
	}

	todos := apptodo.ToDTOs(items)
	return nil, ListTodosOutput{Todos: todos, Total: len(todos)}, nil
}

func (s *MCPServer) createTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CreateTodoInput,
) (*mcp.CallToolResult, TodoOutput, error) {
	item, err := s.service.Create(ctx, input.Text)
	if err != nil {
		return nil, TodoOutput{}, s.toolError(ctx, "create_todo", err)
	}

	return nil, TodoOutput{Todo: apptodo.ToDTO(item)}, nil
}

func (s *MCPServer) updateTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input UpdateTodoInput,
) (*mcp.CallToolResult, TodoOutput, error) {
	ctx = log.WithTodoID(ctx, input.ID)
	item, err := s.service.Update(ctx, input.ID, todo.Patch{Text: input.Text, Completed: input.Completed})
	if err != nil {
		return nil, TodoOutput{}, s.toolError(ctx, "update_todo", err)
	}

	return nil, TodoOutput{Todo: apptodo.ToDTO(item)}, nil
}

func (s *MCPServer) deleteTodoTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DeleteTodoInput,
) (*mcp.CallToolResult, DeleteTodoOutput, error) {
	ctx = log.WithTodoID(ctx, input.ID)
	if err := s.service.Delete(ctx, input.ID); err != nil {
		return nil, DeleteTodoOutput{}, s.toolError(ctx, "delete_todo", err)
	}

	return nil, DeleteTodoOutput{ID: input.ID, Message: "Todo deleted successfully"}, nil
}

// toolError 记录并返回工具错误，校验与不存在错误只记 debug
func (s *MCPServer) toolError(ctx context.Context, tool string, err error) error {
	level := slog.LevelWarn
	if todo.IsValidation(err) {
		level = slog.LevelDebug
	}
	attrs := append(log.LogCtxFromContext(ctx), slog.String("tool", tool), slog.Any("error", err))
	s.logger.LogAttrs(ctx, level, "MCP tool failed", attrs...)
	return err
}
