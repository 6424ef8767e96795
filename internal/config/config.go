package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config представляет основную конфигурацию сервиса персональной ленты.
// Содержит настройки сервера, логгера, сборки ленты, источника заголовков
// и локального хранилища предпочтений.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Logger  LoggerConfig  `json:"logger"`
	App     AppConfig     `json:"app"`
	Source  SourceConfig  `json:"source"`
	Storage StorageConfig `json:"storage"`
}

// ServerConfig содержит настройки HTTP-сервера приложения.
type ServerConfig struct {
	Address string `json:"address"`
}

// LoggerConfig содержит настройки системы логирования.
// Определяет уровень детализации логов (debug, info, warn, error).
type LoggerConfig struct {
	Level string `json:"level"`
}

// AppConfig содержит настройки конвейера сборки ленты:
// окно свежести кэша, предельный размер пачки и интервал фонового прогрева.
type AppConfig struct {
	CacheTTL        string `json:"cache_ttl"`
	MaxBatchSize    int    `json:"max_batch_size"`
	RefreshInterval string `json:"refresh_interval"`
}

// SourceConfig содержит параметры доступа к провайдеру заголовков.
type SourceConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Country string `json:"country"`
}

// StorageConfig содержит путь к локальному файлу базы предпочтений.
type StorageConfig struct {
	Path string `json:"path"`
}

// Load загружает конфигурацию из JSON-файла по указанному пути.
// Возвращает ошибку если файл не существует, недоступен для чтения
// или содержит некорректный JSON. Использует значения по умолчанию
// для незаданных полей конфигурации.
func Load(configPath string) (*Config, error) {
	cfg := New()
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := json.Unmarshal(fileData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
	}
	return cfg, nil
}

// New создает новый экземпляр Config с значениями по умолчанию.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		App: AppConfig{
			CacheTTL:        "5m",
			MaxBatchSize:    50,
			RefreshInterval: "10m",
		},
		Source: SourceConfig{
			BaseURL: "https://newsapi.org/v2",
			Country: "in",
		},
		Storage: StorageConfig{
			Path: "newsfeed.db",
		},
	}
}

// Validate проверяет корректность конфигурации.
// Проверяет обязательные параметры источника, валидность интервалов
// и предельного размера пачки.
// Возвращает ошибку с описанием первой найденной проблемы.
func (c *Config) Validate() error {
	if c.Source.APIKey == "" {
		return fmt.Errorf("source.api_key is not set")
	}
	if _, err := url.ParseRequestURI(c.Source.BaseURL); err != nil {
		return fmt.Errorf("invalid source.base_url: %s", c.Source.BaseURL)
	}
	if c.Source.Country == "" {
		return fmt.Errorf("source.country is not set")
	}
	if c.App.MaxBatchSize <= 0 {
		return fmt.Errorf("app.max_batch_size must be a positive number")
	}
	if _, err := time.ParseDuration(c.App.CacheTTL); err != nil {
		return fmt.Errorf("invalid app.cache_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.App.RefreshInterval); err != nil {
		return fmt.Errorf("invalid app.refresh_interval: %w", err)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is not set")
	}
	return nil
}
