package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptodo "github.com/todoapp/backend/internal/application/todo"
	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/infrastructure/config"
	"github.com/todoapp/backend/internal/infrastructure/metrics"
	"github.com/todoapp/backend/internal/infrastructure/notification"
	infraws "github.com/todoapp/backend/internal/infrastructure/websocket"
	"github.com/todoapp/backend/internal/interfaces/http/handler"
	"github.com/todoapp/backend/internal/interfaces/http/middleware"
	"github.com/todoapp/backend/internal/interfaces/mcp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryRepository 内存仓储
type memoryRepository struct {
	mu    sync.Mutex
	items []*todo.Todo
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*todo.Todo, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		copied := *r.items[i]
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memoryRepository) Create(ctx context.Context, id, text string) (*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	item := &todo.Todo{ID: id, Text: text, CreatedAt: &now}
	r.items = append(r.items, item)
	copied := *item
	return &copied, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID != id {
			continue
		}
		if patch.Text != nil {
			item.Text = *patch.Text
		}
		if patch.Completed != nil {
			item.Completed = *patch.Completed
		}
		copied := *item
		return &copied, nil
	}
	return nil, todo.ErrNotFound
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return todo.ErrNotFound
}

// downGreeter 模拟启动重试全部失败的连接池
type downGreeter struct{}

func (downGreeter) Greet(ctx context.Context) (string, error) { return "", todo.ErrUnavailable }
func (downGreeter) Available() bool                           { return false }

type testServer struct {
	srv    *httptest.Server
	client *apiClient
	hub    *infraws.Hub
}

// buildServer 组装完整路由的服务器，数据库不可用
func buildServer(t *testing.T, addr string) (*HTTPServer, *infraws.Hub) {
	t.Helper()

	hub := infraws.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	service := apptodo.NewService(&memoryRepository{}, notification.NewWebSocketPusher(hub))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry(), nil, hub)

	server := NewServer(
		&config.ServerConfig{HTTPAddr: addr, ShutdownTimeout: time.Second},
		handler.NewTodoHandler(service),
		handler.NewIndexHandler(downGreeter{}),
		handler.NewEventsHandler(hub),
		appMetrics,
		mcp.NewServer(service),
	)
	return server, hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	server, hub := buildServer(t, ":0")
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, client: newAPIClient(srv.URL), hub: hub}
}

func TestServer_TodoScenario(t *testing.T) {
	ts := newTestServer(t)

	created, err := ts.client.createTodo(map[string]string{"text": "buy milk"})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, created.Status)
	assert.NotEmpty(t, created.Todo.ID)
	assert.False(t, created.Todo.Completed)

	updated, err := ts.client.updateTodo(created.Todo.ID, map[string]bool{"completed": true})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, updated.Status)
	assert.True(t, updated.Todo.Completed)
	assert.Equal(t, "buy milk", updated.Todo.Text)

	todos, status, err := ts.client.listTodos()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, todos, 1)
	assert.Equal(t, created.Todo.ID, todos[0].ID)

	status, err = ts.client.deleteTodo(created.Todo.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	status, err = ts.client.deleteTodo(created.Todo.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	res, err := ts.client.createTodo(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Text is required", res.Err.Error)

	res, err = ts.client.updateTodo("missing", map[string]bool{"completed": true})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Todo not found", res.Err.Error)

	todos, _, err := ts.client.listTodos()
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestServer_DegradedDatabase(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.JSONEq(t, `{"error":"Database connection unavailable"}`, resp.String())

	resp, err = ts.client.get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"status":"ok","database":"down"}`, resp.String())
}

func TestServer_RequestIDAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	_, _, err := ts.client.listTodos()
	require.NoError(t, err)

	resp, err := ts.client.get("/health")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header().Get(middleware.HeaderRequestID))

	resp, err = ts.client.get("/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), `todo_http_requests_total{method="GET",path="/api/todos",status="200"} 1`)
	assert.Contains(t, resp.String(), "todo_ws_clients")
}

func TestServer_Swagger(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.get("/swagger/doc.json")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "/api/todos/{id}")
}

func TestServer_LiveEvents(t *testing.T) {
	ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws/todos"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool { return ts.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	created, err := ts.client.createTodo(map[string]string{"text": "buy milk"})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, created.Status)

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := ws.ReadMessage()
	require.NoError(t, err)

	var event apptodo.EventDTO
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "todo.created", event.Type)
	assert.Equal(t, created.Todo.ID, event.ID)
	require.NotNil(t, event.Todo)
	assert.Equal(t, "buy milk", event.Todo.Text)
}

func TestServer_PanicIsLoggedAndCounted(t *testing.T) {
	server, _ := buildServer(t, ":0")
	server.router.GET("/boom", func(c *gin.Context) {
		panic("handler bug")
	})

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	client := newAPIClient(srv.URL)

	resp, err := client.get("/boom")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())

	resp, err = client.get("/metrics")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), `todo_http_requests_total{method="GET",path="/boom",status="500"} 1`)
}

func TestServer_StopRightAfterStart(t *testing.T) {
	for i := 0; i < 3; i++ {
		server, _ := buildServer(t, "127.0.0.1:0")

		done := make(chan error, 1)
		go func() {
			done <- server.Start()
		}()
		require.NoError(t, server.Stop())

		select {
		case err := <-done:
			assert.NoError(t, err, "关闭后 Start 应正常返回")
		case <-time.After(2 * time.Second):
			t.Fatal("Start did not return after Stop")
		}
	}
}

func TestServer_StopBeforeStart(t *testing.T) {
	server, _ := buildServer(t, "127.0.0.1:0")
	require.NoError(t, server.Stop())
	assert.NoError(t, server.Start(), "已关闭的服务器不再监听")
}
