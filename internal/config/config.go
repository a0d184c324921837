package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"campaigninsights/database"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port           string        `json:"port" yaml:"port"`
	MaxUploadBytes int64         `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	SessionTTL     time.Duration `json:"session_ttl" yaml:"-"`

	// Сервисная БД (ключи доступа, сохраненная конфигурация)
	ServiceDatabasePath string `json:"service_database_path" yaml:"service_database_path"`

	// AI конфигурация
	OpenAIAPIKey        string        `json:"-" yaml:"openai_api_key"`
	OpenAIBaseURL       string        `json:"openai_base_url" yaml:"openai_base_url"`
	OpenAIModel         string        `json:"openai_model" yaml:"openai_model"`
	AITimeout           time.Duration `json:"ai_timeout" yaml:"-"`
	AIMaxTokens         int           `json:"ai_max_tokens" yaml:"ai_max_tokens"`
	AITemperature       float64       `json:"ai_temperature" yaml:"ai_temperature"`
	AIRequestsPerSecond float64       `json:"ai_requests_per_second" yaml:"ai_requests_per_second"`

	// Нормализация дат: год, подставляемый к значениям вида "15-Mar"
	ReferenceYear int `json:"reference_year" yaml:"reference_year"`

	// Логирование
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// HasAPIKey сообщает, доступен ли внешний генератор текста
func (c *Config) HasAPIKey() bool {
	return c.OpenAIAPIKey != ""
}

// fileConfig структура YAML-файла конфигурации; длительности задаются строками ("30s", "15m")
type fileConfig struct {
	Config     `yaml:",inline"`
	SessionTTL string `yaml:"session_ttl"`
	AITimeout  string `yaml:"ai_timeout"`
}

// storedSecrets структура JSON в сервисной БД
type storedSecrets struct {
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url,omitempty"`
	OpenAIModel   string `json:"openai_model,omitempty"`
}

// LoadConfig загружает конфигурацию: значения по умолчанию, YAML-файл из CONFIG_FILE,
// переменные окружения и, если передан serviceDB, ключ доступа из сервисной БД
func LoadConfig(serviceDB ...*database.ServiceDB) (*Config, error) {
	config := GetDefaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
		log.Printf("Config loaded from file %s", path)
	}

	applyEnv(config)

	if len(serviceDB) > 0 && serviceDB[0] != nil {
		if err := applyStoredSecrets(serviceDB[0], config); err != nil {
			log.Printf("Failed to read secrets from service database, using env: %v", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// loadFile накладывает значения из YAML-файла на config
func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fc := fileConfig{Config: *config}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.SessionTTL != "" {
		ttl, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return fmt.Errorf("invalid session_ttl %q: %w", fc.SessionTTL, err)
		}
		fc.Config.SessionTTL = ttl
	}
	if fc.AITimeout != "" {
		timeout, err := time.ParseDuration(fc.AITimeout)
		if err != nil {
			return fmt.Errorf("invalid ai_timeout %q: %w", fc.AITimeout, err)
		}
		fc.Config.AITimeout = timeout
	}

	*config = fc.Config
	return nil
}

// applyEnv накладывает переменные окружения; незаданные переменные не меняют значения
func applyEnv(c *Config) {
	c.Port = getEnv("SERVER_PORT", c.Port)
	c.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)
	c.ServiceDatabasePath = getEnv("SERVICE_DATABASE_PATH", c.ServiceDatabasePath)

	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.AITimeout = getEnvDuration("AI_TIMEOUT", c.AITimeout)
	c.AIMaxTokens = getEnvInt("AI_MAX_TOKENS", c.AIMaxTokens)
	c.AITemperature = getEnvFloat("AI_TEMPERATURE", c.AITemperature)
	c.AIRequestsPerSecond = getEnvFloat("AI_REQUESTS_PER_SECOND", c.AIRequestsPerSecond)

	c.ReferenceYear = getEnvInt("REFERENCE_YEAR", c.ReferenceYear)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// applyStoredSecrets заполняет ключ доступа из сервисной БД, если он не задан окружением или файлом
func applyStoredSecrets(serviceDB *database.ServiceDB, c *Config) error {
	raw, err := serviceDB.GetAppConfig()
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}

	var secrets storedSecrets
	if err := json.Unmarshal([]byte(raw), &secrets); err != nil {
		return fmt.Errorf("failed to parse stored config: %w", err)
	}

	if c.OpenAIAPIKey == "" && secrets.OpenAIAPIKey != "" {
		c.OpenAIAPIKey = secrets.OpenAIAPIKey
		if secrets.OpenAIBaseURL != "" && os.Getenv("OPENAI_BASE_URL") == "" {
			c.OpenAIBaseURL = secrets.OpenAIBaseURL
		}
		if secrets.OpenAIModel != "" && os.Getenv("OPENAI_MODEL") == "" {
			c.OpenAIModel = secrets.OpenAIModel
		}
		log.Printf("OpenAI API key loaded from service database")
	}
	return nil
}

// SaveAPIKey сохраняет ключ доступа к OpenAI-совместимому API в сервисную БД
func SaveAPIKey(serviceDB *database.ServiceDB, apiKey, baseURL, model, changedBy string) error {
	if serviceDB == nil {
		return fmt.Errorf("serviceDB is nil")
	}

	data, err := json.Marshal(storedSecrets{
		OpenAIAPIKey:  apiKey,
		OpenAIBaseURL: baseURL,
		OpenAIModel:   model,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal secrets: %w", err)
	}

	if err := serviceDB.SaveAppConfigWithHistory(string(data), changedBy, "api key update"); err != nil {
		return fmt.Errorf("failed to save config to database: %w", err)
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
