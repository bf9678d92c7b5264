package config_test

import (
	"testing"

	"github.com/iankorovinsky/lifeos/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DATABASE", "lifeos")
	t.Setenv("DB_USER", "lifeos")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Port != "3001" {
		t.Errorf("Expected default port 3001, got %s", cfg.Port)
	}
	if cfg.DBType != "mysql" {
		t.Errorf("Expected default db type mysql, got %s", cfg.DBType)
	}
	if cfg.DBConnectionLimit != 5 {
		t.Errorf("Expected default connection limit 5, got %d", cfg.DBConnectionLimit)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadRequiresDatabase(t *testing.T) {
	t.Setenv("DB_DATABASE", "")
	t.Setenv("DB_USER", "lifeos")

	if _, err := config.Load(); err == nil {
		t.Error("Expected an error without DB_DATABASE")
	}
}

func TestLoadSqliteSkipsUserRequirement(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "file::memory:")
	t.Setenv("DB_USER", "")

	if _, err := config.Load(); err != nil {
		t.Errorf("Expected sqlite config to load without DB_USER: %v", err)
	}
}

func TestLoadIgnoresGarbageConnectionLimit(t *testing.T) {
	t.Setenv("DB_DATABASE", "lifeos")
	t.Setenv("DB_USER", "lifeos")
	t.Setenv("DB_CONNECTION_LIMIT", "many")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBConnectionLimit != 5 {
		t.Errorf("Expected fallback connection limit 5, got %d", cfg.DBConnectionLimit)
	}
}
