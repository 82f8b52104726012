package config

import (
	"os"
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	os.Unsetenv("TEST_GETENV")
	if got := getenv("TEST_GETENV", "default"); got != "default" {
		t.Errorf("expected 'default', got '%s'", got)
	}

	os.Setenv("TEST_GETENV", "test-value")
	if got := getenv("TEST_GETENV", "default"); got != "test-value" {
		t.Errorf("expected 'test-value', got '%s'", got)
	}
	os.Unsetenv("TEST_GETENV")
}

func TestGetenvInt(t *testing.T) {
	os.Unsetenv("TEST_GETENV_INT")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 42 {
		t.Errorf("expected default 42, got %d", got)
	}

	os.Setenv("TEST_GETENV_INT", "100")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}

	os.Setenv("TEST_GETENV_INT", "not-an-int")
	if got := getenvInt("TEST_GETENV_INT", 42); got != 42 {
		t.Errorf("expected default 42 for invalid value, got %d", got)
	}
	os.Unsetenv("TEST_GETENV_INT")
}

func TestLoadDefaults(t *testing.T) {
	for _, env := range []string{
		"PLANNER_DB_PATH", "PLANNER_DEBOUNCE_MS", "PLANNER_BACKUP_DIR",
		"PLANNER_EXPORT_PASSWORD", "ROADMAP_API_URL",
		"SFTP_HOST", "SFTP_PORT", "SFTP_USER", "SFTP_PASS", "SFTP_REMOTE_DIR",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	cfg := Load()
	if cfg.DBPath != "planner.db" {
		t.Errorf("expected default db path, got '%s'", cfg.DBPath)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("expected 500ms debounce, got %v", cfg.Debounce)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("expected port 22, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPRemoteDir != "/" {
		t.Errorf("expected remote dir '/', got '%s'", cfg.SFTPRemoteDir)
	}
	if cfg.HasSFTP() {
		t.Error("expected HasSFTP to be false without host/user")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PLANNER_DB_PATH", "/tmp/x.db")
	t.Setenv("PLANNER_DEBOUNCE_MS", "50")
	t.Setenv("SFTP_HOST", "backup.example.com")
	t.Setenv("SFTP_USER", "planner")

	cfg := Load()
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("expected override db path, got '%s'", cfg.DBPath)
	}
	if cfg.Debounce != 50*time.Millisecond {
		t.Errorf("expected 50ms debounce, got %v", cfg.Debounce)
	}
	if !cfg.HasSFTP() {
		t.Error("expected HasSFTP to be true with host and user")
	}
}
