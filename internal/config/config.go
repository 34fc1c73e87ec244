package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rejectlist/rejectdesk/internal/domain/roster"
)

// Config defines dashboard configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	State StateConfig `yaml:"state"`
	UI    UIConfig    `yaml:"ui"`
	Log   LogConfig   `yaml:"log"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type StateConfig struct {
	Path string `yaml:"path"`
}

type UIConfig struct {
	PageSize int `yaml:"page_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load reads configuration from an optional .env file, an optional YAML
// file, and environment variables, in that order of increasing precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		API:   APIConfig{BaseURL: "http://localhost:8000/api"},
		State: StateConfig{Path: defaultStatePath()},
		UI:    UIConfig{PageSize: roster.DefaultPageSize},
		Log:   LogConfig{Level: "info"},
	}

	if path := os.Getenv("REJECTDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if base := os.Getenv("REJECTDESK_API_BASE"); base != "" {
		cfg.API.BaseURL = base
	}
	if path := os.Getenv("REJECTDESK_STATE_PATH"); path != "" {
		cfg.State.Path = path
	}
	if sizeStr := os.Getenv("REJECTDESK_PAGE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REJECTDESK_PAGE_SIZE: %w", err)
		}
		cfg.UI.PageSize = size
	}
	if level := os.Getenv("REJECTDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("REJECTDESK_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}

	if !roster.ValidPageSize(cfg.UI.PageSize) {
		return Config{}, fmt.Errorf("page size %d is not one of %v", cfg.UI.PageSize, roster.PageSizes)
	}
	return cfg, nil
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rejectdesk.db"
	}
	return filepath.Join(dir, "rejectdesk", "state.db")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
