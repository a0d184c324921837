package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campaigninsights/internal/domain/campaign"
)

// DefaultTimeout ограничение времени одного запроса инсайта
const DefaultTimeout = 30 * time.Second

// InsightGenerationError ошибка генерации инсайта для одной кампании
type InsightGenerationError struct {
	Campaign string
	Err      error
}

func (e *InsightGenerationError) Error() string {
	return fmt.Sprintf("insight for campaign %q: %v", e.Campaign, e.Err)
}

func (e *InsightGenerationError) Unwrap() error {
	return e.Err
}

// Insight текст инсайта для кампании. Не кэшируется.
type Insight struct {
	Campaign string `json:"campaign"`
	Text     string `json:"text"`
	Source   string `json:"source"`
	Failed   bool   `json:"failed"`
	Err      error  `json:"-"`
}

// Summarizer строит инсайты по кампаниям
type Summarizer struct {
	generator Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewSummarizer создает summarizer; timeout <= 0 заменяется на DefaultTimeout
func NewSummarizer(generator Generator, timeout time.Duration, logger *slog.Logger) *Summarizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{generator: generator, timeout: timeout, logger: logger}
}

// Source возвращает тип используемого генератора
func (s *Summarizer) Source() string {
	return s.generator.Source()
}

// Summarize генерирует инсайт для кампании.
// Ошибка генерации не возвращается, а записывается в текст инсайта.
func (s *Summarizer) Summarize(ctx context.Context, agg *campaign.CampaignAggregate) Insight {
	facts := BuildFacts(agg)
	result := Insight{Campaign: agg.Campaign, Source: s.generator.Source()}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.generator.Generate(ctx, facts)
	if err != nil {
		genErr := &InsightGenerationError{Campaign: agg.Campaign, Err: err}
		s.logger.Warn("Insight generation failed",
			"campaign", agg.Campaign,
			"source", result.Source,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		result.Failed = true
		result.Err = genErr
		result.Text = fmt.Sprintf("request failed: %v", err)
		return result
	}

	s.logger.Info("Insight generated",
		"campaign", agg.Campaign,
		"source", result.Source,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	result.Text = text
	return result
}

// SummarizeAll последовательно строит инсайты для всех кампаний отчета
func (s *Summarizer) SummarizeAll(ctx context.Context, report *campaign.Report) []Insight {
	campaigns := report.Campaigns()
	insights := make([]Insight, 0, len(campaigns))
	for _, agg := range campaigns {
		insights = append(insights, s.Summarize(ctx, agg))
	}
	return insights
}
