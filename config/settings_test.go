package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	settings, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Server.Port != 8750 {
		t.Errorf("default port = %d, want 8750", settings.Server.Port)
	}
	if settings.Cache.LiveDataTTLSeconds != 1 {
		t.Errorf("default TTL = %d, want 1", settings.Cache.LiveDataTTLSeconds)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file was not created: %v", err)
	}
}

func TestLoadKeepsDefaultsForMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	partial := map[string]any{
		"server": map[string]any{"host": "127.0.0.1", "port": 9000},
	}
	raw, _ := json.Marshal(partial)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", settings.Server.Port)
	}
	if settings.Storage.Backend != StorageBackendFile {
		t.Errorf("storage backend = %q, want file default", settings.Storage.Backend)
	}
	if settings.Database.Path == "" {
		t.Error("database path default was dropped")
	}
}

func TestLoadClampsInvalidTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	raw := []byte(`{"cache":{"liveDataTtlSeconds":0},"storage":{"timeoutSeconds":-5}}`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Cache.LiveDataTTLSeconds != 1 {
		t.Errorf("TTL = %d, want clamped default 1", settings.Cache.LiveDataTTLSeconds)
	}
	if settings.Storage.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d, want clamped default 10", settings.Storage.TimeoutSeconds)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	settings := DefaultSettings()
	settings.Admin.SecretHash = "$2a$10$abcdefghijklmnopqrstuv"
	settings.Storage.Backend = StorageBackendHTTP
	settings.Storage.BucketURL = "https://bucket.example.com/livedata.json"
	if err := m.Save(settings); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Admin.SecretHash != settings.Admin.SecretHash {
		t.Error("secret hash did not round-trip")
	}
	if loaded.Storage.BucketURL != settings.Storage.BucketURL {
		t.Error("bucket URL did not round-trip")
	}
}
