package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaigninsights/internal/application/insight"
	"campaigninsights/internal/application/report"
	"campaigninsights/internal/domain/campaign"
	"campaigninsights/internal/infrastructure/ai"
	"campaigninsights/internal/infrastructure/cache"
	"campaigninsights/server/middleware"
)

const testCSV = "Campaign,Product,Demand Value,Start Date,End Date\n" +
	"A,P1,10,1-Mar,10-Mar\n" +
	"B,P2,20,5-Mar,15-Mar\n" +
	"A,P3,5,2-Mar,20-Mar\n"

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, insight.Facts) (string, error) {
	return "", errors.New("status 503")
}

func (failingGenerator) Source() string { return insight.SourceExternal }

// setupGinTestRouter создает тестовый Gin роутер с маршрутами загрузок
func setupGinTestRouter(generator insight.Generator, maxUploadBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.UseRawPath = true
	router.Use(middleware.GinRequestIDMiddleware())

	uc := report.NewUseCase(
		cache.NewSessionStore(time.Minute),
		insight.NewSummarizer(generator, time.Second, nil),
		campaign.NewNormalizer(2025),
		nil,
	)
	router.GET("/health", HandleHealth(uc, nil))
	NewCampaignHandler(uc, maxUploadBytes).RegisterRoutes(router.Group("/api"))
	return router
}

func multipartRequest(t *testing.T, fileName, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func upload(t *testing.T, router *gin.Engine) report.Result {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "data.csv", testCSV))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result report.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHandleUpload(t *testing.T) {
	router := setupGinTestRouter(insight.NewTemplateGenerator(), 1<<20)

	result := upload(t, router)

	assert.NotEmpty(t, result.SessionID)
	assert.Len(t, result.Rows, 3)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "B", result.Ranking[0].Campaign)
	assert.Equal(t, 15.0, result.Ranking[1].TotalDemand)
	assert.Equal(t, "bar", result.Chart.ChartType)
	assert.Equal(t, insight.SourceTemplate, result.Generator)
}

func TestHandleUploadErrors(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		maxBytes int64
		want     int
	}{
		{"missing columns", "data.csv", "Campaign,Product\nA,P1\n", 1 << 20, http.StatusUnprocessableEntity},
		{"bad date", "data.csv", "Campaign,Product,Demand Value,Start Date,End Date\nA,P1,10,1-Foo,2-Mar\n", 1 << 20, http.StatusUnprocessableEntity},
		{"bad number", "data.csv", "Campaign,Product,Demand Value,Start Date,End Date\nA,P1,ten,1-Mar,2-Mar\n", 1 << 20, http.StatusUnprocessableEntity},
		{"NaN demand", "data.csv", "Campaign,Product,Demand Value,Start Date,End Date\nA,P1,NaN,1-Mar,2-Mar\n", 1 << 20, http.StatusUnprocessableEntity},
		{"infinite demand", "data.csv", "Campaign,Product,Demand Value,Start Date,End Date\nA,P1,10,1-Mar,2-Mar\nB,P2,Inf,1-Mar,2-Mar\n", 1 << 20, http.StatusUnprocessableEntity},
		{"unsupported", "data.json", "{}", 1 << 20, http.StatusBadRequest},
		{"empty file", "data.csv", "", 1 << 20, http.StatusBadRequest},
		{"too large", "data.csv", testCSV + strings.Repeat("A,P1,1,1-Mar,2-Mar\n", 200), 512, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupGinTestRouter(insight.NewTemplateGenerator(), tt.maxBytes)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest(t, tt.fileName, tt.content))

			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error":true`)
		})
	}
}

func TestHandleUploadWithoutFile(t *testing.T) {
	router := setupGinTestRouter(insight.NewTemplateGenerator(), 1<<20)

	w := serve(router, http.MethodPost, "/api/uploads")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSessionRoutes(t *testing.T) {
	router := setupGinTestRouter(insight.NewTemplateGenerator(), 1<<20)
	result := upload(t, router)
	base := "/api/uploads/" + result.SessionID

	t.Run("report", func(t *testing.T) {
		w := serve(router, http.MethodGet, base)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ranking", func(t *testing.T) {
		w := serve(router, http.MethodGet, base+"/ranking")
		require.Equal(t, http.StatusOK, w.Code)

		var resp RankingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Ranking, 2)
		assert.Equal(t, "B", resp.Ranking[0].Campaign)
	})

	t.Run("campaigns", func(t *testing.T) {
		w := serve(router, http.MethodGet, base+"/campaigns")
		require.Equal(t, http.StatusOK, w.Code)

		var resp CampaignsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, []string{"P1", "P3"}, resp.Campaigns[1].Products)
	})

	t.Run("insight", func(t *testing.T) {
		w := serve(router, http.MethodPost, base+"/campaigns/A/insight")
		require.Equal(t, http.StatusOK, w.Code)

		var ins insight.Insight
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ins))
		assert.Equal(t, "A", ins.Campaign)
		assert.False(t, ins.Failed)
		assert.Contains(t, ins.Text, "15")
	})

	t.Run("unknown campaign", func(t *testing.T) {
		w := serve(router, http.MethodPost, base+"/campaigns/Z/insight")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("export", func(t *testing.T) {
		w := serve(router, http.MethodGet, base+"/export")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "data_report.xlsx")
		assert.Positive(t, w.Body.Len())
	})

	t.Run("delete", func(t *testing.T) {
		w := serve(router, http.MethodDelete, base)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = serve(router, http.MethodGet, base)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleInsightCampaignWithSlash(t *testing.T) {
	router := setupGinTestRouter(insight.NewTemplateGenerator(), 1<<20)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "data.csv", "Campaign,Product,Demand Value,Start Date,End Date\nSommer/Herbst,P1,10,1-Mar,10-Mar\n"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result report.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Ranking, 1)
	assert.Equal(t, "Sommer/Herbst", result.Ranking[0].Campaign)

	w = serve(router, http.MethodPost, "/api/uploads/"+result.SessionID+"/campaigns/Sommer%2FHerbst/insight")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ins insight.Insight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ins))
	assert.Equal(t, "Sommer/Herbst", ins.Campaign)
	assert.Contains(t, ins.Text, "Sommer/Herbst")
}

func TestHandleInsightGenerationFailure(t *testing.T) {
	router := setupGinTestRouter(failingGenerator{}, 1<<20)
	result := upload(t, router)

	w := serve(router, http.MethodPost, "/api/uploads/"+result.SessionID+"/campaigns/B/insight")
	require.Equal(t, http.StatusOK, w.Code)

	var ins insight.Insight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ins))
	assert.True(t, ins.Failed)
	assert.Equal(t, "request failed: status 503", ins.Text)
	assert.Equal(t, insight.SourceExternal, ins.Source)
}

func TestHandleHealth(t *testing.T) {
	router := setupGinTestRouter(insight.NewTemplateGenerator(), 1<<20)

	w := serve(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, insight.SourceTemplate, resp.Generator)
}

func TestHandleHealthWithAIMetrics(t *testing.T) {
	metrics := ai.NewMetricsCollector()
	metrics.IncrementProviderRequest(ai.ProviderOpenAI)
	metrics.IncrementProviderError(ai.ProviderOpenAI, "timeout")

	router := gin.New()
	router.GET("/health", HandleHealth(staticSource(insight.SourceExternal), metrics))

	w := serve(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, insight.SourceExternal, resp.Generator)
	require.NotNil(t, resp.AI)
	assert.Equal(t, int64(1), resp.AI.Requests)
	assert.Equal(t, int64(1), resp.AI.Errors["timeout"])
}

type staticSource string

func (s staticSource) Generator() string { return string(s) }

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "march_report.xlsx", exportFileName("march.csv"))
	assert.Equal(t, "campaigns_report.xlsx", exportFileName(""))
	assert.Equal(t, "a_b_report.xlsx", exportFileName(`a"b.xlsx`))
}
