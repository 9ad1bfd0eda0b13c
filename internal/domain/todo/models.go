package todo

import "time"

// Todo 待办事项实体
type Todo struct {
	ID        string     // 唯一标识（服务端生成）
	Text      string     // 待办内容
	Completed bool       // 是否完成
	CreatedAt *time.Time // 创建时间（由数据库写入，可能为空）
}

// Patch 部分更新：nil 表示字段未提供
type Patch struct {
	Text      *string
	Completed *bool
}

// IsEmpty 是否未提供任何可更新字段
func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil
}

// Validate 校验部分更新
func (p Patch) Validate() error {
	if p.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if p.Text != nil && *p.Text == "" {
		return ErrEmptyText
	}
	return nil
}

// ValidateText 校验创建时的内容
func ValidateText(text string) error {
	if text == "" {
		return ErrTextRequired
	}
	return nil
}
