package ai

import (
	"time"

	"golang.org/x/time/rate"
)

// Значения по умолчанию для клиента chat completions
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 300
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

// ClientConfig конфигурация клиента. Повторные попытки не выполняются.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	RateLimit   rate.Limit // запросов в секунду, 0 - без ограничения
	Metrics     *MetricsCollector
}

func (c *ClientConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = rate.Inf
	}
}
