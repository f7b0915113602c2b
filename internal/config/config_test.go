package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/entrematch")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.JWTTTLMinutes != 120 || cfg.ResultCacheTTLMinutes != 60 {
		t.Fatalf("unexpected ttl defaults: %+v", cfg)
	}
	if cfg.SubmitWindowSeconds != 60 || cfg.SubmitMax != 10 {
		t.Fatalf("unexpected rate defaults: %+v", cfg)
	}
	if cfg.SchemaBootstrap {
		t.Fatalf("schema bootstrap should be off by default")
	}
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}
