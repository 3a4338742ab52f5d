package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("BACKEND_BASE_URL")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BackendBaseURL != "http://localhost:8000" {
		t.Errorf("expected default backend base URL, got %s", cfg.BackendBaseURL)
	}
	if cfg.ExportDir != "./exports" {
		t.Errorf("expected default export dir, got %s", cfg.ExportDir)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.DBMaxConns)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Setenv("BACKEND_BASE_URL", "https://api.example.test")
	defer os.Unsetenv("BACKEND_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendBaseURL != "https://api.example.test" {
		t.Errorf("expected env override, got %s", cfg.BackendBaseURL)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestValidate_RequiresSigningKeyOutsideDev(t *testing.T) {
	c := &Config{Env: "production"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing AUTH_SIGNING_KEY in production")
	}

	c.AuthSigningKey = "secret"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DevNeedsNoSigningKey(t *testing.T) {
	c := &Config{Env: "development"}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
