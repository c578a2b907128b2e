package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
security:
  filesystem:
    allowed_paths: ["/home/user/project/**"]
    denied_paths: ["**/.ssh/**"]
  operations:
    read_allowed: true
  policies:
    project:
      patterns: ["/home/user/project/**"]
      operations: [read, write]
      risk_level: low
`)
	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Filesystem.AllowedPaths) != 1 {
		t.Fatalf("expected 1 allowed path, got %v", cfg.Filesystem.AllowedPaths)
	}
	if cfg.Server.Name != "mcpfsbridge" {
		t.Fatalf("expected default server name, got %q", cfg.Server.Name)
	}
	_ = warnings
}

func TestLoad_EmptyAllowedPathsRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
security:
  policies:
    project:
      patterns: ["/a/**"]
      operations: [read]
      risk_level: low
`)
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for empty allowed_paths")
	}
}

func TestLoad_UnknownOperationRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
security:
  filesystem:
    allowed_paths: ["/a/**"]
  policies:
    project:
      patterns: ["/a/**"]
      operations: [obliterate]
      risk_level: low
`)
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for unknown operation")
	}
}

func TestLoad_WarnsOnBroadAllowPattern(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
security:
  filesystem:
    allowed_paths: ["**"]
  policies:
    project:
      patterns: ["/a/**"]
      operations: [read]
      risk_level: low
`)
	_, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning for a bare ** allow pattern")
	}
}
