// Package snapshot persists the ingested collection to disk and restores it
// on startup, skipping re-ingestion when a usable file exists.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/okian/pokedex/internal/domain/model"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// defaultPath is the snapshot location when none is configured.
const defaultPath = "./pokemon-cache.json"

// Ingest produces the full collection when no snapshot can be loaded.
type Ingest func(ctx context.Context) ([]model.Pokemon, error)

// Store owns the persisted snapshot file. The collection it returns is
// treated as immutable by every consumer; the file is written at most once
// per cold start, before any traffic is served.
type Store struct {
	path string
	log  logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithPath sets the snapshot file path.
func WithPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.path = path
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Store with default configuration.
func New(opts ...Option) *Store {
	s := &Store{path: defaultPath}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.Get().Named("snapshot")
	}
	return s
}

// LoadOrIngest returns the persisted collection when the snapshot file is
// readable, trusting its order. Otherwise it runs ingest, sorts the result
// by id ascending, persists it, and returns the fresh collection.
func (s *Store) LoadOrIngest(ctx context.Context, ingest Ingest) ([]model.Pokemon, error) {
	list, err := s.load()
	if err == nil {
		metrics.RecordSnapshotLoad("hit")
		s.log.Info(ctx, "snapshot loaded", logger.String("path", s.path), logger.Int("pokemon", len(list)))
		return list, nil
	}
	metrics.RecordSnapshotLoad("miss")
	s.log.Info(ctx, "no usable snapshot, ingesting", logger.String("path", s.path), logger.Error(err))

	list, err = ingest(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	if err := s.save(list); err != nil {
		return nil, err
	}
	metrics.RecordSnapshotWrite()
	s.log.Info(ctx, "snapshot saved", logger.String("path", s.path), logger.Int("pokemon", len(list)))
	return list, nil
}

func (s *Store) load() ([]model.Pokemon, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var list []model.Pokemon
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return list, nil
}

// save writes the snapshot all-or-nothing: the payload lands in a temp file
// first and is renamed over the target, so a crash mid-write leaves any
// previous file intact.
func (s *Store) save(list []model.Pokemon) error {
	raw, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
