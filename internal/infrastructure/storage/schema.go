package storage

import (
	"context"
	"fmt"
)

const createTodosTableSQL = `
CREATE TABLE IF NOT EXISTS todos (
	id VARCHAR(50) PRIMARY KEY,
	text TEXT NOT NULL,
	completed BOOLEAN DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// EnsureSchema 确保 todos 表存在
func EnsureSchema(ctx context.Context, p *Pool) error {
	return p.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		if _, err := conn.Exec(ctx, createTodosTableSQL); err != nil {
			return fmt.Errorf("failed to create todos table: %w", err)
		}
		return nil
	})
}
