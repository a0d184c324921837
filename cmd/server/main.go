// @title Campaign Insights API
// @version 1.0
// @description Загрузка данных маркетинговых кампаний, рейтинг по спросу и инсайты по кампаниям.

// @host localhost:9999
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaigninsights/database"
	"campaigninsights/internal/config"
	"campaigninsights/internal/container"
	"campaigninsights/server"
)

func main() {
	log.Println("Запуск Campaign Insights Server...")

	log.Println("[1/4] Загрузка конфигурации...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("✗ Ошибка загрузки конфигурации: %v", err)
	}
	log.Printf("✓ Конфигурация загружена. Порт: %s", cfg.Port)

	log.Println("[2/4] Инициализация сервисной базы данных...")
	serviceDB, err := database.NewServiceDB(cfg.ServiceDatabasePath)
	if err != nil {
		log.Fatalf("✗ Не удалось инициализировать сервисную базу данных по пути %s: %v", cfg.ServiceDatabasePath, err)
	}
	defer serviceDB.Close()

	// Ключ доступа может храниться в сервисной БД
	if reloaded, err := config.LoadConfig(serviceDB); err != nil {
		log.Printf("⚠ Не удалось применить конфигурацию из БД: %v", err)
	} else {
		cfg = reloaded
	}

	logger := server.InitLogger(cfg.LogLevel)

	log.Println("[3/4] Создание компонентов...")
	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("✗ Ошибка создания контейнера: %v", err)
	}
	srv := server.NewServer(cfg, c.UseCase, c.Sessions, c.AIMetrics, logger)

	log.Println("[4/4] Запуск HTTP сервера...")
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: %v", err)
		}
		return
	case sig := <-quit:
		log.Printf("Получен сигнал %v, остановка сервера...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AITimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("✗ Ошибка при остановке сервера: %v", err)
	}
	log.Println("Сервер остановлен")
}
