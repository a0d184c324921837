package main

import (
	"flag"
	"fmt"
	"os"

	"campaigninsights/database"
	"campaigninsights/internal/config"
)

func main() {
	setKey := flag.String("set-key", "", "сохранить ключ OpenAI-совместимого API в сервисную БД")
	baseURL := flag.String("base-url", "", "базовый URL API для сохраняемого ключа")
	model := flag.String("model", "", "модель для сохраняемого ключа")
	changedBy := flag.String("by", "config-check", "кто меняет конфигурацию")
	history := flag.Int("history", 0, "показать последние N версий конфигурации")
	flag.Parse()

	fmt.Println("=== Проверка конфигурации ===")
	fmt.Println("")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	serviceDB, err := database.NewServiceDB(cfg.ServiceDatabasePath)
	if err != nil {
		fmt.Printf("❌ Ошибка открытия сервисной БД %s: %v\n", cfg.ServiceDatabasePath, err)
		os.Exit(1)
	}
	defer serviceDB.Close()

	if *setKey != "" {
		if err := config.SaveAPIKey(serviceDB, *setKey, *baseURL, *model, *changedBy); err != nil {
			fmt.Printf("❌ Не удалось сохранить ключ: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Ключ сохранен в сервисную БД")
		fmt.Println("")
	}

	cfg, err = config.LoadConfig(serviceDB)
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация успешно загружена")
	fmt.Println("")

	fmt.Println("Основные настройки:")
	fmt.Printf("  Порт: %s\n", cfg.Port)
	fmt.Printf("  Сервисная БД: %s\n", cfg.ServiceDatabasePath)
	fmt.Printf("  Максимальный размер файла: %d байт\n", cfg.MaxUploadBytes)
	fmt.Printf("  Время жизни сессии: %v\n", cfg.SessionTTL)
	fmt.Printf("  Год для дат: %d\n", cfg.ReferenceYear)
	fmt.Printf("  Уровень логирования: %s\n", cfg.LogLevel)
	fmt.Println("")

	fmt.Println("AI Configuration:")
	if cfg.HasAPIKey() {
		fmt.Printf("  OpenAI API Key: [установлен]\n")
	} else {
		fmt.Printf("  OpenAI API Key: [не установлен, используется шаблон]\n")
	}
	fmt.Printf("  Base URL: %s\n", cfg.OpenAIBaseURL)
	fmt.Printf("  Model: %s\n", cfg.OpenAIModel)
	fmt.Printf("  Max Tokens: %d\n", cfg.AIMaxTokens)
	fmt.Printf("  Temperature: %.2f\n", cfg.AITemperature)
	fmt.Printf("  AI Timeout: %v\n", cfg.AITimeout)
	fmt.Println("")

	if *history > 0 {
		versions, err := serviceDB.GetAppConfigHistory(*history)
		if err != nil {
			fmt.Printf("⚠️  Не удалось получить историю: %v\n", err)
		} else {
			fmt.Println("История конфигурации:")
			for _, v := range versions {
				fmt.Printf("  v%d %s %s (%s)\n", v.Version, v.CreatedAt.Format("2006-01-02 15:04:05"), v.ChangedBy, v.ChangeReason)
			}
			fmt.Println("")
		}
	}

	fmt.Println("=== Проверка завершена ===")
}
