package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
token = "ghp_example"
workers = 4
cache_ttl_minutes = 120
output = "report.html"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "ghp_example" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if got := cfg.CacheTTL(); got != 2*time.Hour {
		t.Errorf("CacheTTL = %v, want 2h", got)
	}
	if cfg.Output != "report.html" {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "" || cfg.Workers != 0 {
		t.Errorf("got non-zero config %+v", cfg)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	if got := cfg.CacheTTL(); got != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", got, DefaultCacheTTL)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("token = [not closed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "depradar", "config.toml"); path != want {
		t.Errorf("Path = %q, want %q", path, want)
	}
}
