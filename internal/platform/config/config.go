package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings. Values come from defaults, then an optional
// YAML file, then SCOPDASH_* environment variables.
type Config struct {
	ExportDir string       `yaml:"export_dir"`
	Log       LogConfig    `yaml:"log"`
	Bus       BusConfig    `yaml:"bus"`
	Editor    EditorConfig `yaml:"editor"`
	Report    ReportConfig `yaml:"report"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type BusConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type EditorConfig struct {
	SuccessDelay time.Duration `yaml:"success_delay"`
}

type ReportConfig struct {
	HiddenSections []string `yaml:"hidden_sections"`
}

func Default() Config {
	return Config{
		ExportDir: ".",
		Log:       LogConfig{Level: "info"},
		Bus:       BusConfig{Debounce: 16 * time.Millisecond},
		Editor:    EditorConfig{SuccessDelay: time.Second},
	}
}

// Load builds a Config. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ExportDir == "" {
		return Config{}, fmt.Errorf("export dir is required")
	}
	cfg.ExportDir = filepath.Clean(cfg.ExportDir)
	if cfg.Bus.Debounce < 0 {
		return Config{}, fmt.Errorf("bus debounce must be non-negative")
	}
	if cfg.Editor.SuccessDelay < 0 {
		return Config{}, fmt.Errorf("editor success delay must be non-negative")
	}
	return cfg, nil
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

func applyEnv(cfg *Config) error {
	if dir := os.Getenv("SCOPDASH_EXPORT_DIR"); dir != "" {
		cfg.ExportDir = dir
	}
	if level := os.Getenv("SCOPDASH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("SCOPDASH_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if raw := os.Getenv("SCOPDASH_DEBOUNCE"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid SCOPDASH_DEBOUNCE: %w", err)
		}
		cfg.Bus.Debounce = d
	}
	if raw := os.Getenv("SCOPDASH_SUCCESS_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid SCOPDASH_SUCCESS_DELAY: %w", err)
		}
		cfg.Editor.SuccessDelay = d
	}
	return nil
}
