package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"leo/internal/config"
)

// WriteConfig writes content to a leo.toml in a fresh temp directory and
// returns its path.
func WriteConfig(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leo.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// LoadConfig writes content and loads it with an isolated HOME so no user
// configuration leaks into the test.
func LoadConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	cfg, _, _, err := config.Load(WriteConfig(t, content))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}
