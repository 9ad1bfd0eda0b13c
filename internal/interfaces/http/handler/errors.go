package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/backend/internal/domain/todo"
	"github.com/todoapp/backend/internal/interfaces/http/response"
)

const (
	msgUnavailable   = "Database connection unavailable"
	msgQueryFailed   = "Database query failed: "
	msgInvalidBody   = "Invalid request body"
	msgTextRequired  = "Text is required"
	msgNoFields      = "No valid fields to update"
	msgEmptyText     = "Text cannot be empty"
	msgNotFound      = "Todo not found"
	msgDeleteSuccess = "Todo deleted successfully"
)

// validationMessages 校验错误对应的响应文案
var validationMessages = map[error]string{
	todo.ErrTextRequired:     msgTextRequired,
	todo.ErrEmptyText:        msgEmptyText,
	todo.ErrNoFieldsToUpdate: msgNoFields,
}

// writeError 将领域错误映射为 HTTP 响应
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, todo.ErrUnavailable):
		response.Error(c, http.StatusInternalServerError, msgUnavailable)
	case errors.Is(err, todo.ErrNotFound):
		response.Error(c, http.StatusNotFound, msgNotFound)
	case todo.IsValidation(err):
		for target, msg := range validationMessages {
			if errors.Is(err, target) {
				response.Error(c, http.StatusBadRequest, msg)
				return
			}
		}
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, msgQueryFailed+err.Error())
	}
}
