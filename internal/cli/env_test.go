package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("GRAPHLOAD_TEST_STR", "bolt://db:7687")
	t.Setenv("GRAPHLOAD_TEST_INT", "3")
	t.Setenv("GRAPHLOAD_TEST_BAD", "three")

	if got := getEnv("TEST_STR"); got != "bolt://db:7687" {
		t.Errorf("getEnv() = %q", got)
	}
	if got := getEnv("TEST_MISSING"); got != "" {
		t.Errorf("getEnv(missing) = %q, want empty", got)
	}
	if got := getEnvString("TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("getEnvString(missing) = %q", got)
	}
	if got := getEnvInt("TEST_INT", 0); got != 3 {
		t.Errorf("getEnvInt() = %d, want 3", got)
	}
	if got := getEnvInt("TEST_BAD", 7); got != 7 {
		t.Errorf("getEnvInt(invalid) = %d, want default 7", got)
	}
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	env := "GRAPHLOAD_TEST_DOTENV=from-file\nGRAPHLOAD_TEST_SET=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("GRAPHLOAD_TEST_SET", "from-shell")
	t.Setenv("GRAPHLOAD_TEST_DOTENV", "")
	os.Unsetenv("GRAPHLOAD_TEST_DOTENV")

	loadEnv(log.New(os.Stderr))

	if got := getEnv("TEST_DOTENV"); got != "from-file" {
		t.Errorf("TEST_DOTENV = %q, want from-file", got)
	}
	if got := getEnv("TEST_SET"); got != "from-shell" {
		t.Errorf("TEST_SET = %q, want from-shell", got)
	}
}

func TestCacheDirOverride(t *testing.T) {
	t.Setenv("GRAPHLOAD_CACHE_DIR", "/tmp/graphload-test-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/graphload-test-cache" {
		t.Errorf("cacheDir() = %q", dir)
	}
}
