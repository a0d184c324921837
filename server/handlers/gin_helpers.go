package handlers

import (
	"github.com/gin-gonic/gin"

	"campaigninsights/server/middleware"
)

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError отправляет JSON ошибку через Gin context и логирует её
func SendJSONError(c *gin.Context, statusCode int, message string) {
	reqID := middleware.GetRequestIDFromGin(c)

	middleware.LogWarn(c.Request.Context(), "Gin HTTP error",
		"error", message,
		"status_code", statusCode,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.AbortWithStatusJSON(statusCode, middleware.ErrorResponse{
		Error:     true,
		Message:   message,
		RequestID: reqID,
	})
}

// SendAppError отправляет ошибку приложения, статус берется из AppError.
// Маршрут запроса записывается в контекст ошибки, если он не задан.
func SendAppError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Context == "" {
		appErr = appErr.WithContext(c.FullPath())
	}
	middleware.HandleGinError(c, appErr)
}
