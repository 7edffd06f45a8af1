package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umlsql.yaml")
	content := "database_url: postgres://localhost:5432/app\nschema: catalog\nexclude:\n  - schema_migrations\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/app" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Schema != "catalog" {
		t.Errorf("Schema = %q, want catalog", cfg.Schema)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "schema_migrations" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing explicit path")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	// The package directory carries no umlsql.yaml, so the default
	// lookup comes back empty without failing.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "" || cfg.Schema != "" || cfg.Exclude != nil {
		t.Errorf("Expected a zero config, got %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umlsql.yaml")
	if err := os.WriteFile(path, []byte("{unclosed"), 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for unparsable YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://from-env")

	cfg := &Config{}
	cfg.ApplyEnv()
	if cfg.DatabaseURL != "postgres://from-env" {
		t.Errorf("DatabaseURL = %q, want the environment value", cfg.DatabaseURL)
	}

	cfg = &Config{DatabaseURL: "postgres://from-file"}
	cfg.ApplyEnv()
	if cfg.DatabaseURL != "postgres://from-file" {
		t.Errorf("DatabaseURL = %q, want the file value to win", cfg.DatabaseURL)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error without a database URL")
	}

	cfg = &Config{DatabaseURL: "postgres://localhost:5432/app"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Schema != "public" {
		t.Errorf("Schema = %q, want the public default", cfg.Schema)
	}

	cfg = &Config{DatabaseURL: "postgres://localhost:5432/app", Schema: "catalog"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Schema != "catalog" {
		t.Errorf("Schema = %q, want catalog to be kept", cfg.Schema)
	}
}
