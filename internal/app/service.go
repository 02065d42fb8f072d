// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/internal/domain/model"
	"github.com/okian/pokedex/internal/domain/query"
	"github.com/okian/pokedex/internal/ingest"
	"github.com/okian/pokedex/internal/snapshot"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// Service owns the served collection and the components that produce it.
// After Start returns, the collection is immutable and reads need no lock.
type Service struct {
	mu sync.Mutex

	// Core components
	memo    *pokeapi.Memo
	fetcher ingest.Fetcher

	// Configuration
	baseURL        string
	batchSize      int
	cacheFile      string
	requestTimeout time.Duration

	// State
	started     bool
	collection  []model.Pokemon
	byID        map[int]model.Pokemon
	types       []string
	generations []int

	// Logging
	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBaseURL sets the upstream PokeAPI root.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithBatchSize sets the ingestion batch size.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithCacheFile sets the snapshot file path.
func WithCacheFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.cacheFile = path
		}
	}
}

// WithRequestTimeout sets the per-call upstream timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithFetcher injects an upstream fetcher, replacing the default client.
// Used by tests to instrument upstream traffic.
func WithFetcher(f ingest.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		batchSize:      25,
		cacheFile:      "./pokemon-cache.json",
		requestTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the snapshot or runs a full ingestion, then derives the
// secondary views served by the API. It is safe to call at most once
// before any traffic; subsequent calls are no-ops.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Get()
	}
	s.log.Info(ctx, "starting pokedex service")

	s.memo = pokeapi.NewMemo()
	if s.fetcher == nil {
		s.fetcher = pokeapi.New(
			pokeapi.WithBaseURL(s.baseURL),
			pokeapi.WithTimeout(s.requestTimeout),
			pokeapi.WithMemo(s.memo),
			pokeapi.WithLogger(s.log.Named("pokeapi")),
		)
	}

	pipeline := ingest.New(s.fetcher,
		ingest.WithBatchSize(s.batchSize),
		ingest.WithLogger(s.log.Named("ingest")),
	)
	store := snapshot.New(
		snapshot.WithPath(s.cacheFile),
		snapshot.WithLogger(s.log.Named("snapshot")),
	)

	collection, err := store.LoadOrIngest(ctx, pipeline.IngestAll)
	if err != nil {
		return err
	}

	s.collection = collection
	s.index()
	metrics.UpdatePokemonTotal(len(collection))

	s.started = true
	s.log.Info(ctx, "pokedex service started",
		logger.Int("pokemon", len(s.collection)),
		logger.Int("types", len(s.types)),
		logger.Int("generations", len(s.generations)),
	)
	return nil
}

// Stop releases the service. The collection is dropped so a later Start
// would rebuild it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.collection = nil
	s.byID = nil
	s.log.Info(context.Background(), "pokedex service stopped")
}

// index precomputes the lookup and enumeration views off the collection.
func (s *Service) index() {
	s.byID = make(map[int]model.Pokemon, len(s.collection))
	typeSet := make(map[string]struct{})
	genSet := make(map[int]struct{})

	for _, p := range s.collection {
		s.byID[p.ID] = p
		for _, t := range p.Types {
			typeSet[strings.ToLower(t)] = struct{}{}
		}
		genSet[p.Generation] = struct{}{}
	}

	s.types = make([]string, 0, len(typeSet))
	for t := range typeSet {
		s.types = append(s.types, t)
	}
	sort.Strings(s.types)

	s.generations = make([]int, 0, len(genSet))
	for g := range genSet {
		s.generations = append(s.generations, g)
	}
	sort.Ints(s.generations)
}

// List applies the query parameters and paginates the result.
func (s *Service) List(ctx context.Context, params query.Params, page, limit int) query.Page {
	filtered := query.Apply(s.collection, params)
	return query.Paginate(filtered, page, limit)
}

// GetByID returns one pokemon by identity, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int) (model.Pokemon, error) {
	p, ok := s.byID[id]
	if !ok {
		return model.Pokemon{}, ErrNotFound
	}
	return p, nil
}

// Types returns all distinct type tags, lowercased and ascending.
func (s *Service) Types(ctx context.Context) []string {
	return s.types
}

// Generations returns all distinct generation numbers, ascending.
func (s *Service) Generations(ctx context.Context) []int {
	return s.generations
}

// CacheStats exposes the upstream memo cache counters.
func (s *Service) CacheStats() pokeapi.MemoStats {
	if s.memo == nil {
		return pokeapi.MemoStats{HitRate: "0%"}
	}
	return s.memo.Stats()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"pokemon":     len(s.collection),
		"types":       len(s.types),
		"generations": len(s.generations),
	}
	if s.memo != nil {
		stats["memo"] = s.memo.Stats()
	}
	return stats
}
