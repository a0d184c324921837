package ai

import (
	"sync"
	"time"
)

// MetricsCollector собирает метрики запросов к провайдерам
type MetricsCollector struct {
	mu sync.RWMutex

	providerRequestsTotal map[string]int64
	providerErrorsTotal   map[string]int64 // ключ provider:error_type
	providerDurationTotal map[string]time.Duration
}

// ProviderMetrics снимок метрик провайдера
type ProviderMetrics struct {
	Requests          int64            `json:"requests"`
	Errors            map[string]int64 `json:"errors"`
	AverageDurationMs int64            `json:"average_duration_ms"`
}

// NewMetricsCollector создает новый сборщик метрик
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		providerRequestsTotal: make(map[string]int64),
		providerErrorsTotal:   make(map[string]int64),
		providerDurationTotal: make(map[string]time.Duration),
	}
}

// IncrementProviderRequest инкрементирует счетчик запросов к провайдеру
func (mc *MetricsCollector) IncrementProviderRequest(providerID string) {
	if mc == nil {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.providerRequestsTotal[providerID]++
}

// IncrementProviderError инкрементирует счетчик ошибок провайдера
func (mc *MetricsCollector) IncrementProviderError(providerID string, errorType string) {
	if mc == nil {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.providerErrorsTotal[providerID+":"+errorType]++
}

// RecordProviderDuration записывает длительность запроса к провайдеру
func (mc *MetricsCollector) RecordProviderDuration(providerID string, duration time.Duration) {
	if mc == nil {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.providerDurationTotal[providerID] += duration
}

// GetProviderMetrics возвращает метрики для провайдера
func (mc *MetricsCollector) GetProviderMetrics(providerID string) ProviderMetrics {
	result := ProviderMetrics{Errors: make(map[string]int64)}
	if mc == nil {
		return result
	}
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	result.Requests = mc.providerRequestsTotal[providerID]
	if result.Requests > 0 {
		result.AverageDurationMs = (mc.providerDurationTotal[providerID] / time.Duration(result.Requests)).Milliseconds()
	}
	prefix := providerID + ":"
	for key, count := range mc.providerErrorsTotal {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			result.Errors[key[len(prefix):]] = count
		}
	}
	return result
}
