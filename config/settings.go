package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Settings represents the server configuration persisted to disk.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Admin    AdminSettings    `json:"admin"`
	Storage  StorageSettings  `json:"storage"`
	Cache    CacheSettings    `json:"cache"`
	Database DatabaseSettings `json:"database"`
	Log      LogConfig        `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// AdminSettings holds the shared editor secret. Only the bcrypt hash is
// persisted; the plaintext is printed once when generated.
type AdminSettings struct {
	SecretHash string `json:"secretHash"`
}

// StorageBackend selects how the live data blob is stored.
type StorageBackend string

const (
	StorageBackendFile StorageBackend = "file"
	StorageBackendHTTP StorageBackend = "http"
)

// StorageSettings configures the object store backing the live data blob.
// Path is used by the file backend, BucketURL by the http backend.
type StorageSettings struct {
	Backend        StorageBackend `json:"backend"`
	Path           string         `json:"path"`
	BucketURL      string         `json:"bucketUrl"`
	TimeoutSeconds int            `json:"timeoutSeconds"`
}

// CacheSettings controls the in-process live data cache. The TTL is kept
// short because editors expect near-real-time reflection of publishes.
type CacheSettings struct {
	LiveDataTTLSeconds int `json:"liveDataTtlSeconds"`
}

// DatabaseSettings configures the sqlite database used for editorial
// collections (submissions) and the analytics play counts.
type DatabaseSettings struct {
	Path string `json:"path"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns the configuration used when no settings file
// exists yet.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Host: "0.0.0.0", Port: 8750},
		Admin:  AdminSettings{SecretHash: ""},
		Storage: StorageSettings{
			Backend:        StorageBackendFile,
			Path:           "data/livedata.json",
			BucketURL:      "",
			TimeoutSeconds: 10,
		},
		Cache:    CacheSettings{LiveDataTTLSeconds: 1},
		Database: DatabaseSettings{Path: "data/reelhouse.db"},
		Log: LogConfig{
			File:       "data/logs/backend.log",
			Level:      "info",
			MaxSize:    50, // 50 MB per file
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk or creates defaults if missing. Older or
// partial files keep their values for the sections they define and pick
// up defaults for the rest.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	raw, err := os.ReadFile(m.path)
	if err != nil {
		return Settings{}, err
	}

	// Decode over defaults so sections absent from the file keep their
	// default values instead of zeroing out.
	settings := DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, err
	}

	if settings.Cache.LiveDataTTLSeconds <= 0 {
		settings.Cache.LiveDataTTLSeconds = DefaultSettings().Cache.LiveDataTTLSeconds
	}
	if settings.Storage.TimeoutSeconds <= 0 {
		settings.Storage.TimeoutSeconds = DefaultSettings().Storage.TimeoutSeconds
	}

	return settings, nil
}

// Save writes settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if err := m.EnsureDir(); err != nil {
		return err
	}

	tmp := m.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		file.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, m.path)
}
