package todo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/infrastructure/log"
)

// Service 待办应用服务（用例编排）
type Service struct {
	repo   todo.Repository
	pusher Pusher
	newID  func() string
	logger *slog.Logger
}

// NewService 创建应用服务
func NewService(repo todo.Repository, pusher Pusher) *Service {
	return &Service{
		repo:   repo,
		pusher: pusher,
		newID:  uuid.NewString,
		logger: log.NewModuleLogger("application", "todo"),
	}
}

// List 获取所有待办
func (s *Service) List(ctx context.Context) ([]*todo.Todo, error) {
	return s.repo.FindAll(ctx)
}

// Create 校验内容、生成 ID 并创建待办
func (s *Service) Create(ctx context.Context, text string) (*todo.Todo, error) {
	if err := todo.ValidateText(text); err != nil {
		return nil, err
	}

	item, err := s.repo.Create(ctx, s.newID(), text)
	if err != nil {
		return nil, err
	}

	s.push(ctx, todo.Event{Type: todo.EventCreated, ID: item.ID, Todo: item})
	return item, nil
}

// Update 部分更新待办
func (s *Service) Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.push(ctx, todo.Event{Type: todo.EventUpdated, ID: item.ID, Todo: item})
	return item, nil
}

// Delete 删除待办
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.push(ctx, todo.Event{Type: todo.EventDeleted, ID: id})
	return nil
}

func (s *Service) push(ctx context.Context, event todo.Event) {
	if s.pusher == nil {
		return
	}
	if err := s.pusher.Push(event); err != nil {
		attrs := append(log.LogCtxFromContext(ctx),
			slog.String("event", string(event.Type)),
			slog.String("todo_id", event.ID),
			slog.Any("error", err),
		)
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to push todo event", attrs...)
	}
}
