package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
	}{
		{"valid development", BaseConfig{Name: "svc", Environment: "development"}, false},
		{"valid production", BaseConfig{Name: "svc", Environment: "production"}, false},
		{"missing name", BaseConfig{Environment: "production"}, true},
		{"invalid environment", BaseConfig{Name: "svc", Environment: "invalid"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type loaderTarget struct {
	Name   string `mapstructure:"name"`
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := "name: nestora-api\nserver:\n  port: 9090\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg loaderTarget
	if err := Load("server", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Name != "nestora-api" {
		t.Errorf("expected name nestora-api, got %q", cfg.Name)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoadMissingFilesIsNotFatal(t *testing.T) {
	var cfg loaderTarget
	if err := Load("server", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "absent.yml"))); err != nil {
		t.Fatalf("Load() with absent file should not fail: %v", err)
	}
}

func TestLoadEnvFileOverlay(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SERVER_PORT=7676\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("SERVER_PORT")

	var cfg loaderTarget
	if err := Load("server", &cfg, WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7676 {
		t.Errorf("expected port from .env (7676), got %d", cfg.Server.Port)
	}
}
