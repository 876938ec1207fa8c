package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string `yaml:"port"`
	Environment    string `yaml:"env"`
	ReadTimeout    int    `yaml:"read_timeout"`
	WriteTimeout   int    `yaml:"write_timeout"`
	DBPath         string `yaml:"db_path"`
	MigrationsPath string `yaml:"migrations_path"`
	UploadsPath    string `yaml:"uploads_path"`
	LogLevel       string `yaml:"log_level"`
	CanvasWidth    int    `yaml:"canvas_width"`
	CanvasHeight   int    `yaml:"canvas_height"`
	BodyLimitMB    int    `yaml:"body_limit_mb"`
	AllowOrigins   string `yaml:"allow_origins"`
}

func defaults() *Config {
	return &Config{
		Port:           "3000",
		Environment:    "development",
		ReadTimeout:    10,
		WriteTimeout:   10,
		DBPath:         "data/db/figures.db",
		MigrationsPath: "migrations/001_init_documents.sql",
		UploadsPath:    "data/uploads",
		LogLevel:       "info",
		CanvasWidth:    1200,
		CanvasHeight:   800,
		BodyLimitMB:    32,
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML-файл из
// CONFIG_FILE (если задан), затем переменные окружения.
func Load() (*Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.ReadTimeout = getEnvAsInt("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", cfg.MigrationsPath)
	cfg.UploadsPath = getEnv("UPLOADS_PATH", cfg.UploadsPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.CanvasWidth = getEnvAsInt("CANVAS_WIDTH", cfg.CanvasWidth)
	cfg.CanvasHeight = getEnvAsInt("CANVAS_HEIGHT", cfg.CanvasHeight)
	cfg.BodyLimitMB = getEnvAsInt("BODY_LIMIT_MB", cfg.BodyLimitMB)
	cfg.AllowOrigins = getEnv("ALLOW_ORIGINS", cfg.AllowOrigins)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
