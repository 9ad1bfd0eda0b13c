package log

import (
	"context"
	"log/slog"
)

type ctxKey string

// 上下文键定义
const (
	// RequestContextID HTTP 请求 ID
	RequestContextID ctxKey = "request_id"

	// TodoContextID 当前操作的待办 ID
	TodoContextID ctxKey = "todo_id"
)

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithTodoID 在上下文中添加待办 ID
func WithTodoID(ctx context.Context, todoID string) context.Context {
	return context.WithValue(ctx, TodoContextID, todoID)
}

// RequestIDFromContext 读取请求 ID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestContextID).(string)
	return id
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	for _, key := range []ctxKey{RequestContextID, TodoContextID} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}

	return attrs
}
