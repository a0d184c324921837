package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"

	"campaigninsights/importer"
	"campaigninsights/internal/application/report"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/internal/infrastructure/cache"
	apperrors "campaigninsights/server/errors"
)

// toAppError сопоставляет ошибки домена и хранилища с HTTP статусами
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var (
		missingErr *campaign.MissingColumnsError
		dateErr    *campaign.DateParseError
		numErr     *campaign.NumericParseError
		csvErr     *csv.ParseError
		maxErr     *http.MaxBytesError
	)

	switch {
	case errors.As(err, &maxErr):
		return apperrors.NewPayloadTooLargeError("файл превышает допустимый размер", err)
	case errors.As(err, &missingErr):
		return apperrors.NewUnprocessableError(missingErr.Error(), err)
	case errors.As(err, &dateErr):
		return apperrors.NewUnprocessableError(dateErr.Error(), err)
	case errors.As(err, &numErr):
		return apperrors.NewUnprocessableError(numErr.Error(), err)
	case errors.As(err, &csvErr):
		return apperrors.NewValidationError("не удалось прочитать CSV: "+csvErr.Error(), err)
	case errors.Is(err, importer.ErrUnsupportedFormat), errors.Is(err, importer.ErrEmptyFile), errors.Is(err, importer.ErrUnreadableFile):
		return apperrors.NewValidationError(err.Error(), err)
	case errors.Is(err, cache.ErrSessionNotFound):
		return apperrors.NewNotFoundError("сессия не найдена или истекла", err)
	case errors.Is(err, report.ErrCampaignNotFound):
		return apperrors.NewNotFoundError(err.Error(), err)
	case errors.Is(err, cache.ErrInsightInFlight):
		return apperrors.NewConflictError("запрос инсайта для этой кампании уже выполняется", err)
	default:
		return apperrors.NewInternalError("unexpected error", err)
	}
}
