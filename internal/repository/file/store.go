// Package file stores each key as <key>.json in a data directory.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const ext = ".json"

// DefaultDebounce is how long Watch waits for a burst of events to settle
const DefaultDebounce = 200 * time.Millisecond

type Store struct {
	dir      string
	log      *zap.Logger
	debounce time.Duration

	mu sync.Mutex
	// last bytes written per key, so Watch can ignore our own saves
	written map[string][]byte
}

// NewStore creates the directory if needed
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		dir:      dir,
		log:      log.With(zap.String("component", "file_store")),
		debounce: DefaultDebounce,
		written:  make(map[string][]byte),
	}, nil
}

// SetDebounce changes the Watch settle delay
func (s *Store) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+ext)
}

func (s *Store) Load(ctx context.Context, key string) (json.RawMessage, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save writes a temp file and renames it over the target, so readers never
// see a half-written document.
func (s *Store) Save(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return repository.ErrInvalidValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}

	s.written[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Watch calls fn for every known key whose file is changed by another
// process. It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, fn func(key string)) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch data directory: %w", err)
	}
	s.log.Info("watching data directory", zap.String("dir", s.dir))

	pending := make(map[string]bool)
	timer := time.NewTimer(s.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			key, ok := s.keyFor(event.Name)
			if !ok {
				continue
			}
			pending[key] = true
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			for key := range pending {
				delete(pending, key)
				if s.ownWrite(key) {
					continue
				}
				s.log.Info("data file changed on disk", zap.String("key", key))
				fn(key)
			}
		}
	}
}

// keyFor maps a path in the data directory to a known key
func (s *Store) keyFor(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, ext) {
		return "", false
	}
	key := strings.TrimSuffix(base, ext)
	return key, repository.IsKnownKey(key)
}

// ownWrite reports whether the file still holds what Save last wrote
func (s *Store) ownWrite(key string) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.written[key]
	return ok && bytes.Equal(last, data)
}
