package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.Port != "8080" || cfg.LogLevel != "info" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWT.TTL != 12*time.Hour || cfg.JWT.CookieName != "__ac" || !cfg.JWT.Enabled || !cfg.JWT.UpdateCredentials {
		t.Fatalf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if !cfg.CSRF.Enabled {
		t.Fatalf("csrf should be enabled by default")
	}
	if len(cfg.Transform.Disabled) != 0 {
		t.Fatalf("expected no disabled transformers, got %v", cfg.Transform.Disabled)
	}
	if cfg.Mongo.Database != "cms" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"JWT_TTL":            "30m",
		"JWT_ENABLED":        "false",
		"TRANSFORM_DISABLED": "resolveuid,teaser",
		"PUBLIC_URL":         "https://cms.example.com",
		"ENV":                "production",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.JWT.TTL != 30*time.Minute || cfg.JWT.Enabled {
		t.Fatalf("unexpected jwt config: %+v", cfg.JWT)
	}
	if len(cfg.Transform.Disabled) != 2 || cfg.Transform.Disabled[0] != "resolveuid" || cfg.Transform.Disabled[1] != "teaser" {
		t.Fatalf("unexpected disabled transformers: %v", cfg.Transform.Disabled)
	}
	if cfg.PublicURL != "https://cms.example.com" || cfg.IsDevelopment() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}
