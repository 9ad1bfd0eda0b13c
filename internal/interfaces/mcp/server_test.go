package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/backend/internal/domain/todo"
)

// stubService 内存实现的待办服务
type stubService struct {
	items map[string]*todo.Todo
	seq   int
}

func newStubService() *stubService {
	return &stubService{items: make(map[string]*todo.Todo)}
}

func (s *stubService) List(ctx context.Context) ([]*todo.Todo, error) {
	result := make([]*todo.Todo, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, item)
	}
	return result, nil
}

func (s *stubService) Create(ctx context.Context, text string) (*todo.Todo, error) {
	if err := todo.ValidateText(text); err != nil {
		return nil, err
	}
	s.seq++
	now := time.Date(2024, 5, 1, 12, 0, s.seq, 0, time.UTC)
	item := &todo.Todo{ID: "id-" + string(rune('0'+s.seq)), Text: text, CreatedAt: &now}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubService) Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, todo.ErrNotFound
	}
	if patch.Text != nil {
		item.Text = *patch.Text
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}
	return item, nil
}

func (s *stubService) Delete(ctx context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return todo.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// connect 通过内存传输连接 MCP 客户端
func connect(t *testing.T, service TodoService) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv := NewServer(service)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := srv.Server().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any, out any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	if out != nil && !res.IsError {
		require.NotEmpty(t, res.Content)
		text, ok := res.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
	return res
}

func TestMCPServer_ListTools(t *testing.T) {
	session := connect(t, newStubService())

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_todos", "create_todo", "update_todo", "delete_todo"}, names)
}

func TestMCPServer_TodoLifecycle(t *testing.T) {
	session := connect(t, newStubService())

	var created TodoOutput
	res := callTool(t, session, "create_todo", map[string]any{"text": "buy milk"}, &created)
	require.False(t, res.IsError)
	require.NotNil(t, created.Todo)
	assert.Equal(t, "buy milk", created.Todo.Text)
	assert.False(t, created.Todo.Completed)

	var updated TodoOutput
	res = callTool(t, session, "update_todo", map[string]any{"id": created.Todo.ID, "completed": true}, &updated)
	require.False(t, res.IsError)
	assert.True(t, updated.Todo.Completed)
	assert.Equal(t, "buy milk", updated.Todo.Text)

	var list ListTodosOutput
	res = callTool(t, session, "list_todos", map[string]any{}, &list)
	require.False(t, res.IsError)
	assert.Equal(t, 1, list.Total)

	var deleted DeleteTodoOutput
	res = callTool(t, session, "delete_todo", map[string]any{"id": created.Todo.ID}, &deleted)
	require.False(t, res.IsError)
	assert.Equal(t, created.Todo.ID, deleted.ID)

	res = callTool(t, session, "delete_todo", map[string]any{"id": created.Todo.ID}, nil)
	assert.True(t, res.IsError)
}

func TestMCPServer_ValidationErrors(t *testing.T) {
	session := connect(t, newStubService())

	res := callTool(t, session, "create_todo", map[string]any{"text": ""}, nil)
	assert.True(t, res.IsError)

	res = callTool(t, session, "update_todo", map[string]any{"id": "x"}, nil)
	assert.True(t, res.IsError)
}
