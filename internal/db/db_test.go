package db

import (
	"os"
	"testing"
)

func TestEnvOr(t *testing.T) {
	t.Run("returns value when set", func(t *testing.T) {
		t.Setenv("DB_TEST_KEY", "custom")
		if got := envOr("DB_TEST_KEY", "fallback"); got != "custom" {
			t.Errorf("expected custom, got %s", got)
		}
	})

	t.Run("returns fallback when unset", func(t *testing.T) {
		os.Unsetenv("DB_TEST_KEY")
		if got := envOr("DB_TEST_KEY", "fallback"); got != "fallback" {
			t.Errorf("expected fallback, got %s", got)
		}
	})

	t.Run("returns fallback when empty", func(t *testing.T) {
		t.Setenv("DB_TEST_KEY", "")
		if got := envOr("DB_TEST_KEY", "fallback"); got != "fallback" {
			t.Errorf("expected fallback, got %s", got)
		}
	})
}

// TestConnectPostgres only runs against a real database.
func TestConnectPostgres(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool := ConnectPostgres()
	defer pool.Close()
}
