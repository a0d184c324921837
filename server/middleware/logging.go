package middleware

import (
	"context"
	"log/slog"
)

// LogError логирует ошибку с request_id из контекста запроса
func LogError(ctx context.Context, err error, msg string, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", GetRequestID(ctx))
	slog.Default().ErrorContext(ctx, msg, attrs...)
}

// LogWarn логирует предупреждение с request_id
func LogWarn(ctx context.Context, msg string, attrs ...any) {
	attrs = append(attrs, "request_id", GetRequestID(ctx))
	slog.Default().WarnContext(ctx, msg, attrs...)
}

// LogInfo логирует информационное сообщение с request_id
func LogInfo(ctx context.Context, msg string, attrs ...any) {
	attrs = append(attrs, "request_id", GetRequestID(ctx))
	slog.Default().InfoContext(ctx, msg, attrs...)
}
