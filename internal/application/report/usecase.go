package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"campaigninsights/importer"
	"campaigninsights/internal/application/insight"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/internal/infrastructure/cache"
	"campaigninsights/reporting"
)

// ErrCampaignNotFound кампания отсутствует в отчете сессии
var ErrCampaignNotFound = errors.New("campaign not found")

// SessionStore хранилище сессий загрузок
type SessionStore interface {
	Create(fileName string, report *campaign.Report) *cache.Session
	Get(id string) (*cache.Session, error)
	Delete(id string) bool
	BeginInsight(id, campaignName string) (func(), error)
}

// UseCase координирует загрузку файла, построение отчета и генерацию инсайтов
type UseCase struct {
	store      SessionStore
	summarizer *insight.Summarizer
	normalizer campaign.Normalizer
	logger     *slog.Logger
}

// NewUseCase создает use case отчетов по кампаниям
func NewUseCase(
	store SessionStore,
	summarizer *insight.Summarizer,
	normalizer campaign.Normalizer,
	logger *slog.Logger,
) *UseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UseCase{
		store:      store,
		summarizer: summarizer,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Result данные сессии для ответа клиенту
type Result struct {
	SessionID string                  `json:"session_id"`
	FileName  string                  `json:"file_name"`
	Rows      []campaign.Record       `json:"rows"`
	Ranking   []campaign.RankingEntry `json:"ranking"`
	Chart     reporting.ChartConfig   `json:"chart"`
	Generator string                  `json:"generator"`
}

// Upload читает файл, проверяет и нормализует записи, агрегирует спрос
// и открывает новую сессию. Ошибки чтения и проверки возвращаются без изменений.
func (uc *UseCase) Upload(ctx context.Context, fileName string, r io.Reader) (*Result, error) {
	table, err := importer.ReadFile(fileName, r)
	if err != nil {
		return nil, err
	}

	rep, err := campaign.Analyze(table, uc.normalizer)
	if err != nil {
		uc.logger.WarnContext(ctx, "Upload rejected", "file_name", fileName, "error", err)
		return nil, err
	}

	session := uc.store.Create(fileName, rep)
	uc.logger.InfoContext(ctx, "Upload processed",
		"session_id", session.ID,
		"file_name", fileName,
		"rows", len(rep.Records),
		"campaigns", len(rep.Ranking),
	)

	return uc.result(session), nil
}

// Session возвращает отчет живой сессии
func (uc *UseCase) Session(id string) (*Result, error) {
	session, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	return uc.result(session), nil
}

// Campaigns возвращает агрегаты кампаний в порядке рейтинга
func (uc *UseCase) Campaigns(id string) ([]*campaign.CampaignAggregate, error) {
	session, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	return session.Report.Campaigns(), nil
}

// Insight генерирует инсайт для одной кампании сессии.
// Для каждой кампании одновременно выполняется не более одного запроса.
func (uc *UseCase) Insight(ctx context.Context, id, campaignName string) (insight.Insight, error) {
	session, err := uc.store.Get(id)
	if err != nil {
		return insight.Insight{}, err
	}

	agg, ok := session.Report.Campaign(campaignName)
	if !ok {
		return insight.Insight{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignName)
	}

	release, err := uc.store.BeginInsight(id, campaignName)
	if err != nil {
		return insight.Insight{}, err
	}
	defer release()

	return uc.summarizer.Summarize(ctx, agg), nil
}

// Export пишет XLSX отчет сессии
func (uc *UseCase) Export(id string, w io.Writer) (string, error) {
	session, err := uc.store.Get(id)
	if err != nil {
		return "", err
	}
	if err := reporting.WriteExcel(w, session.Report); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return session.FileName, nil
}

// Delete завершает сессию и удаляет ее данные
func (uc *UseCase) Delete(id string) error {
	if !uc.store.Delete(id) {
		return cache.ErrSessionNotFound
	}
	return nil
}

// Generator возвращает тип генератора инсайтов
func (uc *UseCase) Generator() string {
	return uc.summarizer.Source()
}

func (uc *UseCase) result(session *cache.Session) *Result {
	return &Result{
		SessionID: session.ID,
		FileName:  session.FileName,
		Rows:      session.Report.Records,
		Ranking:   session.Report.Ranking,
		Chart:     reporting.BuildDemandChart(session.Report.Ranking),
		Generator: uc.summarizer.Source(),
	}
}
