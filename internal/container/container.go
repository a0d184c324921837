package container

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"campaigninsights/internal/application/insight"
	"campaigninsights/internal/application/report"
	"campaigninsights/internal/config"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/internal/infrastructure/ai"
	"campaigninsights/internal/infrastructure/cache"
)

// Container собирает зависимости приложения из конфигурации
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	AIClient   *ai.OpenAIClient     // nil, если ключ доступа не задан
	AIMetrics  *ai.MetricsCollector // nil вместе с AIClient
	Summarizer *insight.Summarizer
	Normalizer campaign.Normalizer
	Sessions   *cache.SessionStore
	UseCase    *report.UseCase
}

// NewContainer создает контейнер. Отсутствие ключа доступа не является ошибкой:
// в этом случае инсайты строятся шаблонным генератором.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		Normalizer: campaign.NewNormalizer(cfg.ReferenceYear),
		Sessions:   cache.NewSessionStore(cfg.SessionTTL),
	}

	var client insight.CompletionClient
	if cfg.HasAPIKey() {
		c.AIMetrics = ai.NewMetricsCollector()
		c.AIClient = ai.NewOpenAIClient(ai.ClientConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.AIMaxTokens,
			Temperature: cfg.AITemperature,
			Timeout:     cfg.AITimeout,
			RateLimit:   rate.Limit(cfg.AIRequestsPerSecond),
			Metrics:     c.AIMetrics,
		})
		client = c.AIClient
		logger.Info("Insight generator configured", "source", insight.SourceExternal, "model", cfg.OpenAIModel)
	} else {
		logger.Info("OpenAI API key not set, using template insights", "source", insight.SourceTemplate)
	}

	c.Summarizer = insight.NewSummarizer(insight.SelectGenerator(client), cfg.AITimeout, logger)
	c.UseCase = report.NewUseCase(c.Sessions, c.Summarizer, c.Normalizer, logger)
	return c, nil
}
