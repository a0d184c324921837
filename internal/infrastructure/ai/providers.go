package ai

import "context"

// ProviderClient интерфейс для AI провайдеров
type ProviderClient interface {
	// GetCompletion выполняет запрос к модели и возвращает текст ответа
	GetCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// GetProviderName возвращает имя провайдера
	GetProviderName() string
}
