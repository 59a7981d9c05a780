package livedata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/afero"
)

var ErrObjectNotFound = errors.New("live data object not found")

// maxObjectSize bounds how much of the live data blob is read. The full
// catalog is a few hundred KB; anything bigger is a broken upload.
const maxObjectSize = 32 * 1024 * 1024

// ObjectStore is the narrow interface the cache uses to reach the bucket
// holding the live data blob.
type ObjectStore interface {
	Fetch(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
}

// FileStore keeps the blob on a local filesystem. It is the default
// backend for single-node deployments and, backed by an in-memory fs,
// the test double for the cache.
type FileStore struct {
	fs   afero.Fs
	path string
}

func NewFileStore(fs afero.Fs, path string) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileStore{fs: fs, path: path}
}

func (s *FileStore) Fetch(ctx context.Context) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read live data file: %w", err)
	}
	return data, nil
}

func (s *FileStore) Put(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create live data dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write live data temp file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace live data file: %w", err)
	}
	return nil
}

// HTTPStore reads and writes the blob at a bucket URL. The client timeout
// bounds every attempt so a hung bucket degrades to the fallback snapshot
// instead of stalling feed responses.
type HTTPStore struct {
	client    *http.Client
	bucketURL string
	attempts  uint
}

func NewHTTPStore(client *http.Client, bucketURL string, timeout time.Duration) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPStore{
		client:    client,
		bucketURL: bucketURL,
		attempts:  2,
	}
}

func (s *HTTPStore) Fetch(ctx context.Context) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) { return s.fetchOnce(ctx) },
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// A missing object will not appear on retry.
			return !errors.Is(err, ErrObjectNotFound)
		}),
	)
}

func (s *HTTPStore) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.bucketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build live data request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch live data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrObjectNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch live data: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxObjectSize))
	if err != nil {
		return nil, fmt.Errorf("read live data body: %w", err)
	}
	return data, nil
}

func (s *HTTPStore) Put(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.bucketURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build live data upload: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload live data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload live data: unexpected status %d", resp.StatusCode)
	}
	return nil
}
