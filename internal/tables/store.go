package tables

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store holds the tables currently in force. Reads are lock free.
type Store struct {
	current atomic.Pointer[Tables]
	logger  *zap.Logger
}

func NewStore(initial *Tables, logger *zap.Logger) *Store {
	s := &Store{logger: logger}
	s.current.Store(initial)
	return s
}

// Open loads tables from path, or the embedded defaults when path is empty.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return NewStore(Default(), logger), nil
	}
	t, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewStore(t, logger), nil
}

func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (s *Store) Current() *Tables {
	return s.current.Load()
}

func (s *Store) Replace(t *Tables) {
	s.current.Store(t)
}

const reloadDebounce = 250 * time.Millisecond

// Watch reloads path whenever it changes until ctx is done. An invalid file is
// logged and the previous tables stay in force.
func (s *Store) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("tables watcher error", zap.Error(err))
		case <-pending:
			pending = nil
			s.reload(path)
		}
	}
}

func (s *Store) reload(path string) {
	t, err := LoadFile(path)
	if err != nil {
		s.logger.Warn("keeping previous tables", zap.String("path", path), zap.Error(err))
		return
	}
	prev := s.Current()
	s.Replace(t)
	s.logger.Info("tables reloaded",
		zap.String("path", path),
		zap.Int("year", t.Year),
		zap.Bool("changed", prev == nil || prev.Fingerprint() != t.Fingerprint()))
}
