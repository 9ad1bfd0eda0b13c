package http

import (
	"time"

	"github.com/go-resty/resty/v2"

	apptodo "github.com/todoapp/backend/internal/application/todo"
	"github.com/todoapp/backend/internal/interfaces/http/response"
)

// apiClient 基于 resty 封装的测试客户端，直接复用 DTO
type apiClient struct {
	client *resty.Client
}

func newAPIClient(baseURL string) *apiClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5*time.Second).
		SetHeader("Content-Type", "application/json")
	return &apiClient{client: client}
}

// todoResult 成功时解析 Todo，失败时解析 error 字段
type todoResult struct {
	Todo   apptodo.TodoDTO
	Err    response.ErrorResponse
	Status int
}

func (c *apiClient) createTodo(body any) (*todoResult, error) {
	var result todoResult
	resp, err := c.client.R().SetBody(body).SetResult(&result.Todo).SetError(&result.Err).Post("/api/todos")
	if err != nil {
		return nil, err
	}
	result.Status = resp.StatusCode()
	return &result, nil
}

func (c *apiClient) updateTodo(id string, body any) (*todoResult, error) {
	var result todoResult
	resp, err := c.client.R().SetBody(body).SetResult(&result.Todo).SetError(&result.Err).Patch("/api/todos/" + id)
	if err != nil {
		return nil, err
	}
	result.Status = resp.StatusCode()
	return &result, nil
}

func (c *apiClient) listTodos() ([]apptodo.TodoDTO, int, error) {
	var todos []apptodo.TodoDTO
	resp, err := c.client.R().SetResult(&todos).Get("/api/todos")
	if err != nil {
		return nil, 0, err
	}
	return todos, resp.StatusCode(), nil
}

func (c *apiClient) deleteTodo(id string) (int, error) {
	resp, err := c.client.R().Delete("/api/todos/" + id)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

func (c *apiClient) get(path string) (*resty.Response, error) {
	return c.client.R().Get(path)
}
