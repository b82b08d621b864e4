package storage

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/configa/pkg/configa"
)

// ErrNotLoaded indicates no snapshot has been parsed yet.
var ErrNotLoaded = errors.New("configuration not loaded")

// Snapshot is an immutable parsed configuration and the time it was parsed.
type Snapshot struct {
	Config   *configa.Config
	ParsedAt time.Time
}

// Storage provides access to the configuration served by the API.
type Storage interface {
	Current() (Snapshot, error)
	Reload() (Snapshot, error)
	Path() string
}

// SnapshotStorage re-parses into a fresh configa.Config and swaps it in under
// a RWMutex, so readers never observe a partially parsed table.
type SnapshotStorage struct {
	path   string
	logger *zap.Logger
	clock  func() time.Time

	mu      sync.RWMutex
	current *Snapshot
}

// Option configures SnapshotStorage.
type Option func(*SnapshotStorage)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *SnapshotStorage) {
		s.clock = clock
	}
}

// NewSnapshotStorage creates storage for path. Nothing is parsed until Reload.
func NewSnapshotStorage(path string, logger *zap.Logger, opts ...Option) *SnapshotStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SnapshotStorage{
		path:   path,
		logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the inspected file.
func (s *SnapshotStorage) Path() string {
	return s.path
}

// Current returns the latest snapshot.
func (s *SnapshotStorage) Current() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Snapshot{}, ErrNotLoaded
	}
	return *s.current, nil
}

// Reload parses the file again. On failure the previous snapshot stays current.
func (s *SnapshotStorage) Reload() (Snapshot, error) {
	cfg := configa.New(s.path, configa.WithLogger(s.logger))
	if err := cfg.ParseErr(); err != nil {
		return Snapshot{}, err
	}

	snap := &Snapshot{Config: cfg, ParsedAt: s.clock()}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.Info("configuration reloaded",
		zap.String("path", s.path),
		zap.Int("sections", len(cfg.Sections())),
	)
	return *snap, nil
}
