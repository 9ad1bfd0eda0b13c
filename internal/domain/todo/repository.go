package todo

import "context"

// Repository 待办事项仓储接口
type Repository interface {
	// FindAll 按创建时间倒序获取所有待办
	FindAll(ctx context.Context) ([]*Todo, error)

	// Create 插入新待办，返回数据库写入后的完整记录
	Create(ctx context.Context, id, text string) (*Todo, error)

	// Update 仅更新 patch 中提供的字段，记录不存在时返回 ErrNotFound
	Update(ctx context.Context, id string, patch Patch) (*Todo, error)

	// Delete 删除待办，记录不存在时返回 ErrNotFound
	Delete(ctx context.Context, id string) error
}
