package content

import (
	"sync"

	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/metrics"
)

// Store holds the current document and swaps it on reload.
type Store struct {
	mu       sync.RWMutex
	path     string
	current  *Content
	logger   *zap.Logger
	recorder metrics.Recorder
}

// NewStore loads the document at path, or the embedded default when path is empty.
func NewStore(path string, logger *zap.Logger, recorder metrics.Recorder) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	s := &Store{path: path, logger: logger, recorder: recorder}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file, empty for the embedded document.
func (s *Store) Path() string { return s.path }

// Get returns the current document. Callers must not mutate it.
func (s *Store) Get() *Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Stats returns the rotating stats list of the current document.
func (s *Store) Stats() []domain.Stat {
	return s.Get().Stats
}

// Reload re-reads the backing file. On error the previous document stays live.
func (s *Store) Reload() error {
	var (
		c   *Content
		err error
	)
	if s.path == "" {
		c, err = Default()
	} else {
		c, err = LoadFile(s.path)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()

	for section, n := range c.Counts() {
		s.recorder.SetContentItems(section, n)
	}
	s.logger.Info("Content loaded",
		zap.String("path", s.path),
		zap.Int("projects", len(c.Projects)),
		zap.Int("stats", len(c.Stats)))
	return nil
}
