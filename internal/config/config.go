package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultFile = ".prchecklist.yaml"

type RuntimeConfig struct {
	Page                  string `yaml:"page"`
	Catalog               string `yaml:"catalog"`
	CatalogTimeoutSeconds int    `yaml:"catalog_timeout_seconds"`
	Store                 string `yaml:"store"`
	StatePath             string `yaml:"state_path"`
	DesktopNotifications  bool   `yaml:"desktop_notifications"`
	NotApplicableStatus   bool   `yaml:"not_applicable_status"`
	LogFile               string `yaml:"log_file"`
	Verbose               bool   `yaml:"verbose"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Page:                  "default",
		Catalog:               "builtin",
		CatalogTimeoutSeconds: 10,
		Store:                 "sqlite",
		StatePath:             ".prchecklist.db",
		DesktopNotifications:  false,
		NotApplicableStatus:   false,
		LogFile:               "",
		Verbose:               false,
	}
}

func (c RuntimeConfig) CatalogTimeout() time.Duration {
	return time.Duration(c.CatalogTimeoutSeconds) * time.Second
}

// LoadFile overlays the YAML document at path onto base. A missing file
// leaves base unchanged.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return base, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", trimmed, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("PRCHECKLIST_PAGE"); ok {
		cfg.Page = v
	}
	if v, ok := getEnvString("PRCHECKLIST_CATALOG"); ok {
		cfg.Catalog = v
	}
	if v, ok := getEnvInt("PRCHECKLIST_CATALOG_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.CatalogTimeoutSeconds = v
	}
	if v, ok := getEnvString("PRCHECKLIST_STORE"); ok {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("PRCHECKLIST_STATE_PATH"); ok {
		cfg.StatePath = v
	}
	if v, ok := getEnvBool("PRCHECKLIST_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("PRCHECKLIST_NA_STATUS_COLUMN"); ok {
		cfg.NotApplicableStatus = v
	}
	if v, ok := getEnvString("PRCHECKLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("PRCHECKLIST_VERBOSE"); ok {
		cfg.Verbose = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
