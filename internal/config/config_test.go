package config

import "testing"

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad(t *testing.T) {
	t.Setenv("VITRINA_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/vitrina.db" {
		t.Errorf("DBPath = %q; want default", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q; want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisCache() {
		t.Error("redis cache should be off by default")
	}
	if cfg.NotificationsEnabled() {
		t.Error("notifications should be off without SMTP config")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("VITRINA_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without a session secret")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("VITRINA_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a short session secret")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VITRINA_SESSION_SECRET", testSecret)
	t.Setenv("VITRINA_SERVER_PORT", "9090")
	t.Setenv("VITRINA_ENV", "production")
	t.Setenv("VITRINA_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("VITRINA_SMTP_HOST", "smtp.example.com")
	t.Setenv("VITRINA_NOTICE_TO", "owner@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddr() != "localhost:9090" {
		t.Errorf("ServerAddr = %q; want localhost:9090", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if !cfg.UseRedisCache() {
		t.Error("redis cache should be enabled")
	}
	if !cfg.NotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
}
