package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvMissingFileIsIgnored(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}

func TestLoadEnvSetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	contents := "# comment\nTRACKER_TEST_A=plain\nTRACKER_TEST_B=\"quoted value\"\nbadline\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("TRACKER_TEST_A", "")
	os.Unsetenv("TRACKER_TEST_A")
	t.Setenv("TRACKER_TEST_B", "")
	os.Unsetenv("TRACKER_TEST_B")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if got := os.Getenv("TRACKER_TEST_A"); got != "plain" {
		t.Fatalf("expected plain, got %q", got)
	}
	if got := os.Getenv("TRACKER_TEST_B"); got != "quoted value" {
		t.Fatalf("expected quoted value, got %q", got)
	}
}

func TestLoadEnvDoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TRACKER_TEST_C=from-file\n"), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("TRACKER_TEST_C", "from-env")
	if err := LoadEnv(path); err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if got := os.Getenv("TRACKER_TEST_C"); got != "from-env" {
		t.Fatalf("expected existing value to win, got %q", got)
	}
}
