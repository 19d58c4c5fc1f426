package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "roster-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected SessionTTL: %s", cfg.SessionTTL)
	}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.SeasonStart.Equal(want) {
		t.Fatalf("unexpected SeasonStart: %s", cfg.SeasonStart)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORAGE_DRIVER=postgres without DATABASE_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_CatalogRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CATALOG_ENABLED", "true")
	t.Setenv("CATALOG_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when CATALOG_ENABLED=true without CATALOG_URL")
	}
}

func TestLoad_SeasonStartParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON_START", "2026-09-07")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	if !cfg.SeasonStart.Equal(want) {
		t.Fatalf("unexpected SeasonStart: %s", cfg.SeasonStart)
	}

	t.Setenv("SEASON_START", "September 1st")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparseable SEASON_START")
	}
}

func TestLoad_CatalogCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CATALOG_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for CATALOG_CIRCUIT_FAILURE_COUNT=0")
	}
}
