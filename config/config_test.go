package config

import "testing"

func TestLoadRequiresSecretAndURI(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGODB_URI", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when MONGODB_URI is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("ALLOW_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBName != "gg" {
		t.Errorf("DBName = %q, want gg", cfg.DBName)
	}
	if len(cfg.AllowOrigins) == 0 {
		t.Error("expected default allow origins")
	}
}

func TestLoadSplitsOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("ALLOW_ORIGINS", "https://gg.social, https://www.gg.social")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("AllowOrigins = %v, want 2 entries", cfg.AllowOrigins)
	}
	if cfg.AllowOrigins[1] != "https://www.gg.social" {
		t.Errorf("second origin = %q, whitespace not trimmed", cfg.AllowOrigins[1])
	}
}
