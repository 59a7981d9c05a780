package rokuconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"reelhouse/models"
)

var ErrStorageDirRequired = errors.New("storage directory not provided")

// Store persists the Roku configuration document as a JSON file. Absence
// of the file is a valid state meaning "never configured". Writes bump
// the document version so concurrent editors can detect that they
// overwrote someone; last write wins by design.
type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore creates a store keeping its document inside storageDir.
func NewStore(storageDir string) (*Store, error) {
	if strings.TrimSpace(storageDir) == "" {
		return nil, ErrStorageDirRequired
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Store{path: filepath.Join(storageDir, "roku_config.json")}, nil
}

// Raw returns the persisted document bytes, or nil if none exists yet.
func (s *Store) Raw() (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read roku config: %w", err)
	}
	return raw, nil
}

// Load returns the fully resolved configuration. A missing or malformed
// document resolves to defaults rather than an error.
func (s *Store) Load() (models.RokuConfig, error) {
	raw, err := s.Raw()
	if err != nil {
		return models.RokuConfig{}, err
	}
	return Resolve(raw), nil
}

// Save resolves the incoming document against defaults, assigns the next
// version number, and persists it atomically. The stored version always
// moves forward regardless of what the caller sent, so a stale editor's
// write is detectable by every other open session.
func (s *Store) Save(cfg models.RokuConfig) (models.RokuConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := int64(0)
	if raw, err := os.ReadFile(s.path); err == nil {
		current = Resolve(raw).Version
	}
	cfg.Version = current + 1
	normalize(&cfg)

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return models.RokuConfig{}, fmt.Errorf("encode roku config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return models.RokuConfig{}, fmt.Errorf("write roku config temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return models.RokuConfig{}, fmt.Errorf("replace roku config: %w", err)
	}

	return cfg, nil
}
