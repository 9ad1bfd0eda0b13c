package todo

import "github.com/todoapp/backend/internal/domain/todo"

// Pusher 推送接口（定义在 application 层）
// 待办变更后通知在线的前端，推送失败不影响主流程
type Pusher interface {
	Push(event todo.Event) error
}
