package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Load with no file present falls back to defaults.
func TestLoadDefaults(t *testing.T) {
	cfg, err := loadFromDir(t)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Fatalf("server.port=%d want 8000", cfg.Server.Port)
	}
	if cfg.Database.Path != "data/finance.db" {
		t.Fatalf("database.path=%q", cfg.Database.Path)
	}
	if cfg.AI.Model != "gemini-1.5-flash-latest" {
		t.Fatalf("ai.model=%q", cfg.AI.Model)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FT_SERVER_PORT", "9999")
	t.Setenv("FT_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := loadFromDir(t)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("server.port=%d, FT_SERVER_PORT override ignored", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Fatalf("database.path=%q, FT_DATABASE_PATH override ignored", cfg.Database.Path)
	}
	if cfg.AI.APIKey != "test-key" {
		t.Fatalf("ai.api_key=%q, GEMINI_API_KEY override ignored", cfg.AI.APIKey)
	}
}

func TestFileValuesOverridableByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 7000\ndatabase:\n  path: \"from-file.db\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("FT_SERVER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("server.port=%d want env override 7070", cfg.Server.Port)
	}
	if cfg.Database.Path != "from-file.db" {
		t.Fatalf("database.path=%q want file value", cfg.Database.Path)
	}
}

// loadFromDir runs Load("") from an empty directory so no config file is
// picked up and defaults plus environment carry the configuration.
func loadFromDir(t *testing.T) (*Config, error) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return Load("")
}
