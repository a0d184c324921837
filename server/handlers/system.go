package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campaigninsights/internal/infrastructure/ai"
)

// HealthResponse ответ проверки состояния
type HealthResponse struct {
	Status    string              `json:"status"`
	Service   string              `json:"service"`
	Generator string              `json:"generator"`
	AI        *ai.ProviderMetrics `json:"ai,omitempty"` // только для внешнего генератора
	Time      string              `json:"time"`
}

// GeneratorSource сообщает тип генератора инсайтов
type GeneratorSource interface {
	Generator() string
}

// HandleHealth обрабатывает GET /health
// @Summary Проверка состояния
// @Description generator показывает, используется ли внешний сервис (external) или шаблон (template); ai содержит счетчики запросов к внешнему сервису
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse "Сервис работает"
// @Router /health [get]
func HandleHealth(source GeneratorSource, metrics *ai.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:    "ok",
			Service:   "campaign-insights",
			Generator: source.Generator(),
			Time:      time.Now().Format(time.RFC3339),
		}
		if metrics != nil {
			m := metrics.GetProviderMetrics(ai.ProviderOpenAI)
			resp.AI = &m
		}
		SendJSONResponse(c, http.StatusOK, resp)
	}
}
