package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultFocusMinutes = 25

// Config is loaded from <base>/config.yaml. A missing file yields the
// defaults; a malformed file is an error.
type Config struct {
	Owner        string `yaml:"owner"`
	DBPath       string `yaml:"db_path"`
	FocusMinutes int    `yaml:"focus_minutes"`
	Notify       bool   `yaml:"notify"`
}

func Load(basePath string) (Config, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		basePath = filepath.Join(home, ".focusdeck")
	}

	cfg := Config{
		Owner:        "default",
		DBPath:       filepath.Join(basePath, "focusdeck.db"),
		FocusMinutes: defaultFocusMinutes,
		Notify:       true,
	}

	payload, err := os.ReadFile(filepath.Join(basePath, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.FocusMinutes <= 0 {
		cfg.FocusMinutes = defaultFocusMinutes
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join(basePath, "focusdeck.db")
	}
	return cfg, nil
}
