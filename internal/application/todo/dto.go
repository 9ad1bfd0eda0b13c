package todo

import (
	"time"

	"github.com/todoapp/backend/internal/domain/todo"
)

// CreateTodoDTO 创建待办请求
type CreateTodoDTO struct {
	Text string `json:"text" binding:"required" example:"buy milk"`
}

// UpdateTodoDTO 更新待办请求，未提供的字段保持不变
type UpdateTodoDTO struct {
	Text      *string `json:"text,omitempty" example:"buy bread"`
	Completed *bool   `json:"completed,omitempty" example:"true"`
}

// Patch 转换为领域层的部分更新
func (d UpdateTodoDTO) Patch() todo.Patch {
	return todo.Patch{Text: d.Text, Completed: d.Completed}
}

// TodoDTO 待办响应
type TodoDTO struct {
	ID        string  `json:"_id" example:"3f1c2a9e-7a51-4c43-9d0e-6f4b8a2f9b10"`
	Text      string  `json:"text" example:"buy milk"`
	Completed bool    `json:"completed" example:"false"`
	CreatedAt *string `json:"created_at" example:"2024-05-01T12:00:00Z"`
}

// EventDTO 推送给前端的变更事件
type EventDTO struct {
	Type string   `json:"type"`
	Todo *TodoDTO `json:"todo,omitempty"`
	ID   string   `json:"id"`
}

// ToDTO 领域对象转换为响应
func ToDTO(t *todo.Todo) *TodoDTO {
	if t == nil {
		return nil
	}
	dto := &TodoDTO{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
	}
	if t.CreatedAt != nil {
		s := t.CreatedAt.Format(time.RFC3339Nano)
		dto.CreatedAt = &s
	}
	return dto
}

// ToDTOs 批量转换，结果永不为 nil
func ToDTOs(items []*todo.Todo) []*TodoDTO {
	result := make([]*TodoDTO, 0, len(items))
	for _, t := range items {
		result = append(result, ToDTO(t))
	}
	return result
}

// ToEventDTO 领域事件转换为推送消息
func ToEventDTO(e todo.Event) *EventDTO {
	return &EventDTO{
		Type: string(e.Type),
		Todo: ToDTO(e.Todo),
		ID:   e.ID,
	}
}
