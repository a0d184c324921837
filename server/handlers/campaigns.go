package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"campaigninsights/internal/application/report"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/reporting"
	apperrors "campaigninsights/server/errors"
	"campaigninsights/server/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CampaignHandler обработчик загрузок и отчетов по кампаниям
type CampaignHandler struct {
	useCase        *report.UseCase
	maxUploadBytes int64
}

// NewCampaignHandler создает новый обработчик отчетов по кампаниям
func NewCampaignHandler(useCase *report.UseCase, maxUploadBytes int64) *CampaignHandler {
	return &CampaignHandler{
		useCase:        useCase,
		maxUploadBytes: maxUploadBytes,
	}
}

// RankingResponse рейтинг кампаний и данные графика
type RankingResponse struct {
	Ranking []campaign.RankingEntry `json:"ranking"`
	Chart   reporting.ChartConfig   `json:"chart"`
}

// CampaignsResponse агрегаты кампаний в порядке рейтинга
type CampaignsResponse struct {
	Campaigns []*campaign.CampaignAggregate `json:"campaigns"`
	Total     int                           `json:"total"`
}

// RegisterRoutes регистрирует маршруты загрузок в группе /api
func (h *CampaignHandler) RegisterRoutes(api *gin.RouterGroup) {
	uploads := api.Group("/uploads")
	{
		uploads.POST("", h.HandleUpload)
		uploads.GET("/:id", h.HandleGetReport)
		uploads.GET("/:id/ranking", h.HandleGetRanking)
		uploads.GET("/:id/campaigns", h.HandleGetCampaigns)
		uploads.POST("/:id/campaigns/:campaign/insight", h.HandleInsight)
		uploads.GET("/:id/export", h.HandleExport)
		uploads.DELETE("/:id", h.HandleDelete)
	}
}

// HandleUpload обрабатывает POST /api/uploads
// @Summary Загрузить файл кампаний
// @Description Проверяет столбцы, нормализует даты и спрос, агрегирует спрос по кампаниям и открывает сессию
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV или XLSX файл"
// @Success 201 {object} report.Result "Отчет по загрузке"
// @Failure 400 {object} middleware.ErrorResponse "Файл не передан или не читается"
// @Failure 413 {object} middleware.ErrorResponse "Файл слишком большой"
// @Failure 422 {object} middleware.ErrorResponse "Нет обязательных столбцов или значение не разобрано"
// @Router /api/uploads [post]
func (h *CampaignHandler) HandleUpload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			SendAppError(c, err)
			return
		}
		SendAppError(c, apperrors.NewValidationError("поле file с CSV или XLSX файлом обязательно", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		SendAppError(c, apperrors.NewValidationError("не удалось открыть файл", err))
		return
	}
	defer file.Close()

	result, err := h.useCase.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		SendAppError(c, err)
		return
	}

	middleware.LogInfo(c.Request.Context(), "Upload session created",
		"session_id", result.SessionID,
		"file_name", result.FileName,
		"campaigns", len(result.Ranking),
	)
	SendJSONResponse(c, http.StatusCreated, result)
}

// HandleGetReport обрабатывает GET /api/uploads/:id
// @Summary Получить отчет сессии
// @Tags uploads
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} report.Result "Отчет по загрузке"
// @Failure 404 {object} middleware.ErrorResponse "Сессия не найдена"
// @Router /api/uploads/{id} [get]
func (h *CampaignHandler) HandleGetReport(c *gin.Context) {
	result, err := h.useCase.Session(c.Param("id"))
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// HandleGetRanking обрабатывает GET /api/uploads/:id/ranking
// @Summary Рейтинг кампаний по спросу
// @Tags uploads
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} RankingResponse "Рейтинг и данные графика"
// @Failure 404 {object} middleware.ErrorResponse "Сессия не найдена"
// @Router /api/uploads/{id}/ranking [get]
func (h *CampaignHandler) HandleGetRanking(c *gin.Context) {
	result, err := h.useCase.Session(c.Param("id"))
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, RankingResponse{
		Ranking: result.Ranking,
		Chart:   result.Chart,
	})
}

// HandleGetCampaigns обрабатывает GET /api/uploads/:id/campaigns
// @Summary Агрегаты кампаний
// @Description Продукты, суммарный спрос и период каждой кампании
// @Tags uploads
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} CampaignsResponse "Агрегаты кампаний"
// @Failure 404 {object} middleware.ErrorResponse "Сессия не найдена"
// @Router /api/uploads/{id}/campaigns [get]
func (h *CampaignHandler) HandleGetCampaigns(c *gin.Context) {
	campaigns, err := h.useCase.Campaigns(c.Param("id"))
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, CampaignsResponse{
		Campaigns: campaigns,
		Total:     len(campaigns),
	})
}

// HandleInsight обрабатывает POST /api/uploads/:id/campaigns/:campaign/insight
// @Summary Сгенерировать инсайт по кампании
// @Description Ошибка внешнего сервиса возвращается в тексте инсайта с failed=true
// @Tags insights
// @Produce json
// @Param id path string true "ID сессии"
// @Param campaign path string true "Идентификатор кампании"
// @Success 200 {object} insight.Insight "Инсайт"
// @Failure 404 {object} middleware.ErrorResponse "Сессия или кампания не найдена"
// @Failure 409 {object} middleware.ErrorResponse "Запрос для кампании уже выполняется"
// @Router /api/uploads/{id}/campaigns/{campaign}/insight [post]
func (h *CampaignHandler) HandleInsight(c *gin.Context) {
	ctx := c.Request.Context()
	result, err := h.useCase.Insight(ctx, c.Param("id"), c.Param("campaign"))
	if err != nil {
		SendAppError(c, err)
		return
	}
	if result.Failed {
		middleware.LogWarn(ctx, "Insight returned inline error",
			"session_id", c.Param("id"),
			"campaign", result.Campaign,
			"error", result.Err,
		)
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// HandleExport обрабатывает GET /api/uploads/:id/export
// @Summary Выгрузить отчет в Excel
// @Tags uploads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "ID сессии"
// @Success 200 {file} file "XLSX отчет"
// @Failure 404 {object} middleware.ErrorResponse "Сессия не найдена"
// @Router /api/uploads/{id}/export [get]
func (h *CampaignHandler) HandleExport(c *gin.Context) {
	var buf bytes.Buffer
	fileName, err := h.useCase.Export(c.Param("id"), &buf)
	if err != nil {
		SendAppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFileName(fileName)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// HandleDelete обрабатывает DELETE /api/uploads/:id
// @Summary Завершить сессию
// @Description Удаляет данные загрузки из памяти
// @Tags uploads
// @Param id path string true "ID сессии"
// @Success 204 "Сессия завершена"
// @Failure 404 {object} middleware.ErrorResponse "Сессия не найдена"
// @Router /api/uploads/{id} [delete]
func (h *CampaignHandler) HandleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.useCase.Delete(id); err != nil {
		SendAppError(c, err)
		return
	}
	middleware.LogInfo(c.Request.Context(), "Upload session deleted", "session_id", id)
	c.Status(http.StatusNoContent)
}

// exportFileName строит имя файла выгрузки из имени загруженного файла
func exportFileName(uploaded string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	base = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return '_'
		}
		return r
	}, base)
	if base == "" || base == "." {
		base = "campaigns"
	}
	return base + "_report.xlsx"
}
