package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"campaigninsights/internal/application/report"
	"campaigninsights/internal/config"
	"campaigninsights/internal/infrastructure/ai"
	"campaigninsights/internal/infrastructure/cache"
	"campaigninsights/server/handlers"
	"campaigninsights/server/middleware"
)

// janitorInterval период очистки истекших сессий
const janitorInterval = time.Minute

// Server HTTP сервер отчетов по кампаниям
type Server struct {
	config     *config.Config
	useCase    *report.UseCase
	sessions   *cache.SessionStore
	aiMetrics  *ai.MetricsCollector
	logger     *slog.Logger
	httpServer *http.Server

	handlerOnce    sync.Once
	httpHandler    http.Handler
	handlerInitErr error

	stopJanitor context.CancelFunc
}

// NewServer создает сервер; зависимости собираются в internal/container.
// aiMetrics может быть nil, если внешний генератор не настроен.
func NewServer(cfg *config.Config, useCase *report.UseCase, sessions *cache.SessionStore, aiMetrics *ai.MetricsCollector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = Logger
	}
	return &Server{
		config:    cfg,
		useCase:   useCase,
		sessions:  sessions,
		aiMetrics: aiMetrics,
		logger:    logger,
	}
}

// Start запускает HTTP сервер и очистку сессий; блокируется до остановки
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.config.AITimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	janitorCtx, cancel := context.WithCancel(context.Background())
	s.stopJanitor = cancel
	s.sessions.StartJanitor(janitorCtx, janitorInterval)

	log.Printf("Starting HTTP server on %s...", addr)
	log.Printf("API доступно по адресу: http://localhost%s", addr)
	log.Printf("Генератор инсайтов: %s", s.useCase.Generator())

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", addr, err)
	}
	return nil
}

func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		s.httpHandler, s.handlerInitErr = s.buildHTTPHandler()
	})
	if s.handlerInitErr != nil {
		return nil, s.handlerInitErr
	}
	return s.httpHandler, nil
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	if s.useCase == nil {
		return nil, fmt.Errorf("use case is nil")
	}

	// Режим можно переопределить через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Идентификатор кампании может содержать "/", он передается как %2F
	router.UseRawPath = true
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware(s.logger))
	router.Use(middleware.GinRecoveryMiddleware(s.logger))
	router.MaxMultipartMemory = s.config.MaxUploadBytes

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	router.GET("/health", handlers.HandleHealth(s.useCase, s.aiMetrics))

	api := router.Group("/api")
	handlers.NewCampaignHandler(s.useCase, s.config.MaxUploadBytes).RegisterRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		handlers.SendJSONError(c, http.StatusNotFound, "маршрут не найден")
	})

	return router, nil
}

// ServeHTTP реализует http.Handler для тестов и вспомогательных утилит
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server is not initialized", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopJanitor != nil {
		s.stopJanitor()
	}
	if s.httpServer == nil {
		return nil
	}

	log.Println("Initiating graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	log.Println("Graceful shutdown completed")
	return nil
}
