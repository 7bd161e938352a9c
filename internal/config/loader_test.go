package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
addr: ":9000"
repository_dir: /srv/models
load_existing: true
monitor: true
log_level: debug
cors:
  enabled: true
  allowed_origins: ["*"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.RepositoryDir != "/srv/models" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !cfg.LoadExisting || !cfg.Monitor || cfg.LogLevel != "debug" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !cfg.CORS.Enabled || len(cfg.CORS.AllowedOrigins) != 1 {
		t.Fatalf("cors=%+v", cfg.CORS)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "config.json", `{"addr":":9001","log_level":"warn"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9001" || cfg.LogLevel != "warn" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeTemp(t, "config.toml", "addr = \":9002\"\nmonitor = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9002" || !cfg.Monitor {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("empty path should fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
	path := writeTemp(t, "config.ini", "addr=:9000")
	if _, err := Load(path); err == nil {
		t.Fatal("unsupported extension should fail")
	}
}
