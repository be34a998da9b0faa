package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_BACKEND_BASE_URL", "http://backend.local/api/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend.local/api" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 15*time.Second || cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Backend, cfg.Session)
	}
	if cfg.Session.Store != SessionStoreMemory || cfg.UsesDatabase() {
		t.Fatalf("expected memory sessions by default")
	}
	if cfg.GetAllowedOrigins() != "*" {
		t.Fatalf("expected open CORS in dev")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Bad mode", map[string]string{"APP_MODE": "staging"}},
		{"Bad store", map[string]string{"APP_MODE": "dev", "SESSION_STORE": "redis"}},
		{"Default secret in prod", map[string]string{"APP_MODE": "prod"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
