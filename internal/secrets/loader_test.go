package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	t.Setenv("CAREER_REFEREE_TEST_KEY", "from-env")

	secret, err := Load(Source{
		Name:  "api key",
		File:  path,
		Env:   "CAREER_REFEREE_TEST_KEY",
		Value: "inline",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "from-file" {
		t.Fatalf("expected file value, got %q", secret)
	}
}

func TestLoadFallsBackToEnvThenValue(t *testing.T) {
	t.Setenv("CAREER_REFEREE_TEST_KEY", "from-env")

	secret, err := Load(Source{Env: "CAREER_REFEREE_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-env" {
		t.Fatalf("expected env value, got %q", secret)
	}

	t.Setenv("CAREER_REFEREE_TEST_KEY", "")

	secret, err = Load(Source{Env: "CAREER_REFEREE_TEST_KEY", Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "inline" {
		t.Fatalf("expected inline value, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "gemini api key"}); err == nil {
		t.Fatal("expected error for empty source")
	}

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	if _, err := Load(Source{File: path, Value: "inline"}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}
