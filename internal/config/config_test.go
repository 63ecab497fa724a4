package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GAMEJOLT_GAME_ID", "1234")
	t.Setenv("GAMEJOLT_PRIVATE_KEY", "secret")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.GameID != "1234" || cfg.PrivateKey != "secret" {
		t.Fatalf("credentials not loaded: %+v", cfg)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.WaitTimeout != 30*time.Second || cfg.SessionTTL != 7*24*time.Hour {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.SessionStoreType != "bbolt" || cfg.APIRoot != "http://gamejolt.com/api/game/v1/" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "GAMEJOLT_GAME_ID=77\nGAMEJOLT_PRIVATE_KEY=k\nSESSION_STORE_TYPE=None\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	for _, key := range []string{"GAMEJOLT_GAME_ID", "GAMEJOLT_PRIVATE_KEY", "SESSION_STORE_TYPE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.GameID != "77" || cfg.SessionStoreType != "none" {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("GAMEJOLT_GAME_ID", "")
	t.Setenv("GAMEJOLT_PRIVATE_KEY", "secret")
	if _, err := LoadFrom(""); err == nil {
		t.Fatalf("expected missing game id error")
	}
}

func TestLoadRejectsNonPositiveDurations(t *testing.T) {
	t.Setenv("GAMEJOLT_GAME_ID", "1")
	t.Setenv("GAMEJOLT_PRIVATE_KEY", "k")
	t.Setenv("WAIT_TIMEOUT_SECONDS", "0")
	if _, err := LoadFrom(""); err == nil {
		t.Fatalf("expected wait_timeout_seconds error")
	}
}
