package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"campaigninsights/internal/application/insight"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/internal/infrastructure/ai"
	"campaigninsights/internal/infrastructure/cache"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.ServiceDatabasePath == "" {
		errors = append(errors, "service database path is required")
	}

	if c.MaxUploadBytes < 1 {
		errors = append(errors, "max upload bytes must be positive")
	}
	if c.SessionTTL < time.Minute {
		errors = append(errors, "session TTL must be at least 1 minute")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	// Валидация AI конфигурации; отсутствие ключа допустимо (шаблонный генератор)
	if c.OpenAIModel == "" {
		errors = append(errors, "openai model is required")
	}
	if c.OpenAIBaseURL == "" {
		errors = append(errors, "openai base url is required")
	}
	if c.AIMaxTokens < 1 {
		errors = append(errors, "AI max tokens must be at least 1")
	}
	if c.AITemperature < 0 || c.AITemperature > 2 {
		errors = append(errors, fmt.Sprintf("AI temperature must be between 0 and 2, got %g", c.AITemperature))
	}
	if c.AIRequestsPerSecond < 0 {
		errors = append(errors, "AI requests per second cannot be negative")
	}

	// Валидация таймаутов
	if c.AITimeout < time.Second {
		errors = append(errors, "AI timeout must be at least 1 second")
	}

	if c.ReferenceYear < 1 || c.ReferenceYear > 9999 {
		errors = append(errors, fmt.Sprintf("reference year must be between 1 and 9999, got %d", c.ReferenceYear))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:                "9999",
		MaxUploadBytes:      32 << 20,
		SessionTTL:          cache.DefaultSessionTTL,
		ServiceDatabasePath: "service.db",
		OpenAIBaseURL:       ai.DefaultBaseURL,
		OpenAIModel:         ai.DefaultModel,
		AITimeout:           insight.DefaultTimeout,
		AIMaxTokens:         ai.DefaultMaxTokens,
		AITemperature:       ai.DefaultTemperature,
		ReferenceYear:       campaign.DefaultReferenceYear,
		LogLevel:            "INFO",
	}
}
