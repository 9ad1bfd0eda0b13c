package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apptodo "github.com/todoapp/backend/internal/application/todo"
	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/interfaces/http/response"
)

// TodoService 待办用例，由 application/todo.Service 实现
type TodoService interface {
	List(ctx context.Context) ([]*todo.Todo, error)
	Create(ctx context.Context, text string) (*todo.Todo, error)
	Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error)
	Delete(ctx context.Context, id string) error
}

// TodoHandler 待办事项处理器
type TodoHandler struct {
	service TodoService
}

// NewTodoHandler 创建待办事项处理器
func NewTodoHandler(service TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List 获取待办列表
// @Summary 获取待办列表
// @Description 按创建时间倒序返回全部待办
// @Tags 待办
// @Produce json
// @Success 200 {array} apptodo.TodoDTO
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, apptodo.ToDTOs(items))
}

// Create 创建待办
// @Summary 创建待办
// @Tags 待办
// @Accept json
// @Produce json
// @Param body body apptodo.CreateTodoDTO true "待办内容"
// @Success 201 {object} apptodo.TodoDTO
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req apptodo.CreateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(c, http.StatusBadRequest, msgTextRequired)
			return
		}
		response.Error(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, apptodo.ToDTO(item))
}

// Update 部分更新待办
// @Summary 更新待办
// @Description 只更新请求中出现的字段，未知字段被忽略
// @Tags 待办
// @Accept json
// @Produce json
// @Param id path string true "待办ID"
// @Param body body apptodo.UpdateTodoDTO true "更新内容"
// @Success 200 {object} apptodo.TodoDTO
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todos/{id} [patch]
func (h *TodoHandler) Update(c *gin.Context) {
	var req apptodo.UpdateTodoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		// 空请求体视为没有可更新字段
		if errors.Is(err, io.EOF) {
			response.Error(c, http.StatusBadRequest, msgNoFields)
			return
		}
		response.Error(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Patch())
	if err != nil {
		writeError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, apptodo.ToDTO(item))
}

// Delete 删除待办
// @Summary 删除待办
// @Tags 待办
// @Produce json
// @Param id path string true "待办ID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, msgDeleteSuccess)
}
