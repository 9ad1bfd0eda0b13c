package todo

import "errors"

var (
	// ErrNotFound 待办不存在
	ErrNotFound = errors.New("todo not found")
	// ErrUnavailable 数据库连接不可用
	ErrUnavailable = errors.New("database connection unavailable")
	// ErrTextRequired 缺少待办内容
	ErrTextRequired = errors.New("text is required")
	// ErrEmptyText 待办内容为空
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrNoFieldsToUpdate 没有可更新的字段
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
)

// IsValidation 是否为参数校验错误
func IsValidation(err error) bool {
	return errors.Is(err, ErrTextRequired) ||
		errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrNoFieldsToUpdate)
}
