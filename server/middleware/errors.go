package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError интерфейс для ошибок с HTTP статусом и сообщением
// Используется для избежания циклических зависимостей
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleGinError пишет JSON ошибку с учетом HTTPError и логирует её.
// Ошибки без статуса считаются внутренними, их текст клиенту не отдается.
func HandleGinError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	statusCode := http.StatusInternalServerError
	message := "Internal server error"
	attrs := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}

	cause := err
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
		message = httpErr.UserMessage()
		cause = httpErr.Unwrap()
		attrs = append(attrs, "user_message", message, "context", httpErr.GetContext())
	}
	attrs = append(attrs, "status_code", statusCode)

	if statusCode >= http.StatusInternalServerError {
		LogError(c.Request.Context(), cause, "HTTP error", attrs...)
	} else {
		LogWarn(c.Request.Context(), "HTTP error", append(attrs, "error", cause)...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     true,
		Message:   message,
		RequestID: reqID,
	})
}
