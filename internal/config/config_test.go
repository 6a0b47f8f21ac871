package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Storage != "postgres" {
		t.Errorf("Storage = %q, want postgres", cfg.Storage)
	}
	if cfg.AlertsEnabled() {
		t.Error("AlertsEnabled without SMTP_HOST should be false")
	}
	key, err := cfg.EncryptionKeyBytes()
	if err != nil {
		t.Fatalf("EncryptionKeyBytes: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("default key length = %d, want 32", len(key))
	}
}

func TestNewConfigRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "cassandra")
	if _, err := NewConfig(); err == nil {
		t.Error("expected error for unknown STORAGE")
	}
}

func TestNewConfigRejectsBadKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "zz")
	if _, err := NewConfig(); err == nil {
		t.Error("expected error for non-hex ENCRYPTION_KEY")
	}
}

func TestNewConfigMemoryStorageNeedsNoDB(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("DB_CONN", "")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Storage != "memory" {
		t.Errorf("Storage = %q, want memory", cfg.Storage)
	}
}
