package todo

// EventType 待办变更事件类型
type EventType string

const (
	// EventCreated 待办已创建
	EventCreated EventType = "todo.created"
	// EventUpdated 待办已更新
	EventUpdated EventType = "todo.updated"
	// EventDeleted 待办已删除
	EventDeleted EventType = "todo.deleted"
)

// Event 待办变更事件
type Event struct {
	Type EventType
	ID   string
	Todo *Todo // 删除事件为 nil
}
