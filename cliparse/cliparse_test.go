package cliparse

import "testing"

func TestParseFlags(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("ADMIN_KEY_SALT", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:dev.db", "-admin-salt", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.CommitQueueSize != DefaultCommitQueueSize {
		t.Errorf("Expected default commit queue, got %d", cfg.CommitQueueSize)
	}
	if cfg.SubscriberQueueSize != DefaultSubscriberQueueSize {
		t.Errorf("Expected default subscriber queue, got %d", cfg.SubscriberQueueSize)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "env-salt")
	t.Setenv("COMMIT_QUEUE_SIZE", "64")
	t.Setenv("SUBSCRIBER_QUEUE_SIZE", "16")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9999 || cfg.DatabaseURL != "postgres://example" || cfg.DatabaseType != "postgres" {
		t.Errorf("Env fallback wrong: %+v", cfg)
	}
	if cfg.AdminKeySalt != "env-salt" {
		t.Errorf("Expected env salt, got %s", cfg.AdminKeySalt)
	}
	if cfg.CommitQueueSize != 64 || cfg.SubscriberQueueSize != 16 {
		t.Errorf("Queue sizes wrong: %+v", cfg)
	}
}

func TestParseFlagsMissingRequired(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("ADMIN_KEY_SALT", "")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error without database URL")
	}

	if _, err := ParseFlags([]string{"-d", "file:dev.db"}); err == nil {
		t.Error("Expected error without admin salt")
	}

	if _, err := ParseFlags([]string{"-d", "x", "-t", "oracle", "-admin-salt", "s"}); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}
