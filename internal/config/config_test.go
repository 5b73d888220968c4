package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[app]
port = 9000

[pipeline]
chunk_size = 1500
chunk_overlap = 150

[quiz]
free_attempt_limit = 3
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("PIPELINE_CHUNK_OVERLAP", "100")
	t.Setenv("DATABASE_DSN", "user:pw@tcp(db:3306)/study?parseTime=true")
	t.Setenv("LLM_API_KEY", "key-123")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("ADMIN_API_KEY", "admin-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Port != 9000 {
		t.Errorf("expected port from file, got %d", cfg.App.Port)
	}
	if cfg.Pipeline.ChunkSize != 1500 || cfg.Pipeline.ChunkOverlap != 100 {
		t.Errorf("unexpected pipeline config %+v", cfg.Pipeline)
	}
	if cfg.Quiz.FreeAttemptLimit != 3 || cfg.Quiz.NumQuestions != 50 {
		t.Errorf("unexpected quiz config %+v", cfg.Quiz)
	}
	if cfg.MySQLDSN() != "user:pw@tcp(db:3306)/study?parseTime=true" {
		t.Errorf("expected explicit DSN, got %q", cfg.MySQLDSN())
	}
	if cfg.LLM.APIKey != "key-123" {
		t.Errorf("expected api key from env, got %q", cfg.LLM.APIKey)
	}
	if !cfg.Auth.Enabled || cfg.Auth.AdminKey != "admin-key" {
		t.Errorf("unexpected auth config from env %+v", cfg.Auth)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("DATABASE_NAME=from_dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "none.toml"))
	t.Setenv("ENV_FILE", envPath)
	t.Cleanup(func() { os.Unsetenv("DATABASE_NAME") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Name != "from_dotenv" {
		t.Errorf("expected database name from .env, got %q", cfg.Database.Name)
	}
	if cfg.MySQLDSN() != "root:@tcp(127.0.0.1:3306)/from_dotenv?parseTime=true&loc=UTC&charset=utf8mb4" {
		t.Errorf("unexpected assembled DSN %q", cfg.MySQLDSN())
	}
}
