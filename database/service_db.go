package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServiceDB сервисная база данных: конфигурация приложения и ключи доступа.
// Загруженные пользователями данные здесь не хранятся.
type ServiceDB struct {
	conn *sql.DB
}

// ConfigVersion запись истории конфигурации
type ConfigVersion struct {
	Version      int       `json:"version"`
	ConfigJSON   string    `json:"-"`
	ChangedBy    string    `json:"changed_by"`
	ChangeReason string    `json:"change_reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewServiceDB создает новое подключение к сервисной базе данных
func NewServiceDB(dbPath string) (*ServiceDB, error) {
	config := DBConfig{}

	// Для in-memory SQLite требуется ровно одно соединение,
	// иначе каждое новое соединение получит пустую БД без таблиц.
	if isInMemoryServiceDB(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	return NewServiceDBWithConfig(dbPath, config)
}

// isInMemoryServiceDB определяет, что путь относится к in-memory SQLite
func isInMemoryServiceDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// NewServiceDBWithConfig создает новое подключение к сервисной базе данных с конфигурацией
func NewServiceDBWithConfig(dbPath string, config DBConfig) (*ServiceDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open service database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(4)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(2)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping service database: %w", err)
	}

	if !isInMemoryServiceDB(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			log.Printf("[ServiceDB] Warning: Failed to enable WAL mode: %v", err)
		}
	}

	if err := InitServiceSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize service schema: %w", err)
	}

	return &ServiceDB{conn: conn}, nil
}

// InitServiceSchema создает таблицы сервисной БД
func InitServiceSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS app_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			config_json TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS app_config_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version INTEGER NOT NULL,
			config_json TEXT NOT NULL,
			changed_by TEXT,
			change_reason TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close закрывает подключение к сервисной базе данных
func (db *ServiceDB) Close() error {
	return db.conn.Close()
}

// Ping проверяет подключение к базе данных
func (db *ServiceDB) Ping() error {
	return db.conn.Ping()
}

// GetAppConfig возвращает сохраненную конфигурацию в JSON или пустую строку
func (db *ServiceDB) GetAppConfig() (string, error) {
	var configJSON string
	err := sq.Select("config_json").
		From("app_config").
		Where(sq.Eq{"id": 1}).
		RunWith(db.conn).
		QueryRow().
		Scan(&configJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get app config: %w", err)
	}
	return configJSON, nil
}

// GetAppConfigVersion возвращает текущую версию конфигурации, 0 если она не сохранена
func (db *ServiceDB) GetAppConfigVersion() (int, error) {
	var version int
	err := sq.Select("version").
		From("app_config").
		Where(sq.Eq{"id": 1}).
		RunWith(db.conn).
		QueryRow().
		Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get app config version: %w", err)
	}
	return version, nil
}

// SaveAppConfig сохраняет конфигурацию приложения
func (db *ServiceDB) SaveAppConfig(configJSON string) error {
	return db.SaveAppConfigWithHistory(configJSON, "", "")
}

// SaveAppConfigWithHistory сохраняет конфигурацию, предыдущая версия переносится в историю
func (db *ServiceDB) SaveAppConfigWithHistory(configJSON, changedBy, changeReason string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currentVersion int
	var currentJSON string
	err = sq.Select("version", "config_json").
		From("app_config").
		Where(sq.Eq{"id": 1}).
		RunWith(tx).
		QueryRow().
		Scan(&currentVersion, &currentJSON)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to get current config version: %w", err)
	}

	if currentVersion > 0 {
		_, err = sq.Insert("app_config_history").
			Columns("version", "config_json", "changed_by", "change_reason").
			Values(currentVersion, currentJSON, changedBy, changeReason).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("failed to save config history: %w", err)
		}
	}

	newVersion := currentVersion + 1
	_, err = sq.Insert("app_config").
		Columns("id", "config_json", "version", "updated_at").
		Values(1, configJSON, newVersion, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(id) DO UPDATE SET config_json = excluded.config_json, version = excluded.version, updated_at = CURRENT_TIMESTAMP").
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to save app config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit app config: %w", err)
	}

	log.Printf("Config saved with version %d", newVersion)
	return nil
}

// GetAppConfigHistory возвращает предыдущие версии конфигурации, новые первыми
func (db *ServiceDB) GetAppConfigHistory(limit int) ([]ConfigVersion, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := sq.Select("version", "config_json", "COALESCE(changed_by, '')", "COALESCE(change_reason, '')", "created_at").
		From("app_config_history").
		OrderBy("version DESC").
		Limit(uint64(limit)).
		RunWith(db.conn).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to get app config history: %w", err)
	}
	defer rows.Close()

	var history []ConfigVersion
	for rows.Next() {
		var v ConfigVersion
		if err := rows.Scan(&v.Version, &v.ConfigJSON, &v.ChangedBy, &v.ChangeReason, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config history: %w", err)
		}
		history = append(history, v)
	}
	return history, rows.Err()
}
