package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/todoapp/backend/internal/domain/todo"
)

const todoColumns = "id, text, completed, created_at"

const (
	selectTodosSQL = `SELECT ` + todoColumns + ` FROM todos ORDER BY created_at DESC`

	insertTodoSQL = `INSERT INTO todos (id, text, completed) VALUES ($1, $2, FALSE)
		RETURNING ` + todoColumns

	updateTextSQL = `UPDATE todos SET text = $2 WHERE id = $1
		RETURNING ` + todoColumns

	updateCompletedSQL = `UPDATE todos SET completed = $2 WHERE id = $1
		RETURNING ` + todoColumns

	updateTextAndCompletedSQL = `UPDATE todos SET text = $2, completed = $3 WHERE id = $1
		RETURNING ` + todoColumns

	deleteTodoSQL = `DELETE FROM todos WHERE id = $1`
)

// todoRepository 待办事项 PostgreSQL 仓储实现
type todoRepository struct {
	pool *Pool
}

// NewTodoRepository 创建待办事项仓储实例
func NewTodoRepository(pool *Pool) todo.Repository {
	return &todoRepository{pool: pool}
}

// FindAll 获取所有待办，按创建时间倒序
func (r *todoRepository) FindAll(ctx context.Context) ([]*todo.Todo, error) {
	items := make([]*todo.Todo, 0)

	err := r.pool.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		rows, err := conn.Query(ctx, selectTodosSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanTodo(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	return items, nil
}

// Create 插入新待办
func (r *todoRepository) Create(ctx context.Context, id, text string) (*todo.Todo, error) {
	var item *todo.Todo

	err := r.pool.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		var err error
		item, err = scanTodo(conn.QueryRow(ctx, insertTodoSQL, id, text))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return item, nil
}

// Update 仅更新提供的字段
func (r *todoRepository) Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	query, args, err := updateStatement(id, patch)
	if err != nil {
		return nil, err
	}

	var item *todo.Todo
	err = r.pool.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		var err error
		item, err = scanTodo(conn.QueryRow(ctx, query, args...))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, todo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return item, nil
}

// Delete 删除待办
func (r *todoRepository) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.pool.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		tag, err := conn.Exec(ctx, deleteTodoSQL, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if affected == 0 {
		return todo.ErrNotFound
	}

	return nil
}

// updateStatement 按提供的字段选择固定的 UPDATE 语句
func updateStatement(id string, patch todo.Patch) (string, []any, error) {
	switch {
	case patch.Text != nil && patch.Completed != nil:
		return updateTextAndCompletedSQL, []any{id, *patch.Text, *patch.Completed}, nil
	case patch.Text != nil:
		return updateTextSQL, []any{id, *patch.Text}, nil
	case patch.Completed != nil:
		return updateCompletedSQL, []any{id, *patch.Completed}, nil
	default:
		return "", nil, todo.ErrNoFieldsToUpdate
	}
}

// scanTodo 将一行映射为实体，completed 为 NULL 时视为 false
func scanTodo(row pgx.Row) (*todo.Todo, error) {
	var (
		item      todo.Todo
		completed *bool
		createdAt *time.Time
	)
	if err := row.Scan(&item.ID, &item.Text, &completed, &createdAt); err != nil {
		return nil, err
	}
	if completed != nil {
		item.Completed = *completed
	}
	item.CreatedAt = createdAt
	return &item, nil
}

// 编译时检查接口实现
var _ todo.Repository = (*todoRepository)(nil)
