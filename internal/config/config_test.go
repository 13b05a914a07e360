package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("it falls back to defaults when the file is missing", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("port = %d, want 8080", cfg.Server.Port)
		}
		if cfg.Analytics.RecentHireWindow != 30*24*time.Hour {
			t.Errorf("recent hire window = %s", cfg.Analytics.RecentHireWindow)
		}
		if cfg.Database.Driver != "postgres" {
			t.Errorf("driver = %q", cfg.Database.Driver)
		}
	})

	t.Run("it expands environment variables in YAML and lets env override", func(t *testing.T) {
		t.Setenv("TF_TEST_DSN", "postgres://hr@db/hr")
		t.Setenv("JWT_SECRET", "from-env")

		path := filepath.Join(t.TempDir(), "config.yaml")
		yaml := `
server:
  port: 9090
database:
  driver: memory
  url: ${TF_TEST_DSN}
auth:
  jwt_secret: from-file
analytics:
  cache_ttl: 45s
`
		if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Server.Port != 9090 {
			t.Errorf("port = %d, want 9090", cfg.Server.Port)
		}
		if cfg.Database.Driver != "memory" {
			t.Errorf("driver = %q, want memory", cfg.Database.Driver)
		}
		if cfg.Database.URL != "postgres://hr@db/hr" {
			t.Errorf("url = %q", cfg.Database.URL)
		}
		if cfg.Auth.JWTSecret != "from-env" {
			t.Errorf("jwt secret = %q, want from-env", cfg.Auth.JWTSecret)
		}
		if cfg.Analytics.CacheTTL != 45*time.Second {
			t.Errorf("cache ttl = %s", cfg.Analytics.CacheTTL)
		}
	})

	t.Run("it rejects malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server: [unterminated"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected an error")
		}
	})
}
