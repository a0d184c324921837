package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ProviderOpenAI имя провайдера
const ProviderOpenAI = "openai"

// Message сообщение чата
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// OpenAIClient клиент OpenAI-совместимого API chat completions
type OpenAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	limiter     *rate.Limiter
	metrics     *MetricsCollector
}

var _ ProviderClient = (*OpenAIClient)(nil)

// NewOpenAIClient создает новый клиент
func NewOpenAIClient(config ClientConfig) *OpenAIClient {
	config.applyDefaults()

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 5,
	}

	return &OpenAIClient{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		apiKey:      config.APIKey,
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(config.RateLimit, 1),
		metrics: config.Metrics,
	}
}

// GetProviderName возвращает имя провайдера
func (c *OpenAIClient) GetProviderName() string {
	return ProviderOpenAI
}

// Model возвращает имя используемой модели
func (c *OpenAIClient) Model() string {
	return c.model
}

// GetCompletion выполняет один запрос chat completions без повторных попыток
func (c *OpenAIClient) GetCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	c.metrics.IncrementProviderRequest(ProviderOpenAI)

	text, errType, err := c.doCompletion(ctx, systemPrompt, userPrompt)
	c.metrics.RecordProviderDuration(ProviderOpenAI, time.Since(start))
	if err != nil {
		c.metrics.IncrementProviderError(ProviderOpenAI, errType)
		slog.Warn("[OpenAI] Chat completion failed",
			"model", c.model,
			"error_type", errType,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}
	return text, nil
}

func (c *OpenAIClient) doCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", "rate_limit", fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", "encode", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", "request", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", "timeout", fmt.Errorf("request timed out: %w", err)
		}
		return "", "network", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "network", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatCompletionResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && parsed.Error != nil {
			msg = parsed.Error.Message
			lower := strings.ToLower(msg + " " + parsed.Error.Type)
			if strings.Contains(lower, "quota") {
				return "", "quota", fmt.Errorf("quota exceeded: %s", msg)
			}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", "rate_limit", fmt.Errorf("rate limit exceeded (429): %s", msg)
		}
		return "", "status", fmt.Errorf("API returned status %d: %s", resp.StatusCode, msg)
	}

	if decodeErr != nil {
		return "", "decode", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if parsed.Error != nil {
		return "", "api", fmt.Errorf("API error: %s (type: %s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", "decode", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), "", nil
}
