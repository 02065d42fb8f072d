// Package ingest drives the upstream ingestion pipeline: generation
// discovery, species enumeration, batched detail fetching, and mapping
// into the flat domain model.
package ingest

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/internal/domain/model"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// defaultBatchSize bounds concurrent outstanding requests per generation.
const defaultBatchSize = 25

// Fetcher is the upstream surface the pipeline consumes. Satisfied by
// *pokeapi.Client; narrowed to an interface so tests can instrument it.
type Fetcher interface {
	GenerationList(ctx context.Context) (*pokeapi.GenerationList, error)
	Generation(ctx context.Context, id int) (*pokeapi.Generation, error)
	Species(ctx context.Context, url string) (*pokeapi.Species, error)
	Pokemon(ctx context.Context, url string) (*pokeapi.PokemonDetail, error)
	EvolutionChain(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
}

// Pipeline ingests the whole dataset from the upstream source.
type Pipeline struct {
	fetcher   Fetcher
	batchSize int
	log       logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithBatchSize sets the per-generation batch size.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New constructs a Pipeline over the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		batchSize: defaultBatchSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.log == nil {
		p.log = logger.Get().Named("ingest")
	}
	return p
}

// IngestAll fetches every generation concurrently and returns the combined
// collection. Only a failure of the top-level generation list is fatal;
// everything below degrades to skipped items. The caller is responsible for
// final ordering.
func (p *Pipeline) IngestAll(ctx context.Context) ([]model.Pokemon, error) {
	start := time.Now()
	p.log.Info(ctx, "loading all pokemon from all generations")

	list, err := p.fetcher.GenerationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	results := make([][]model.Pokemon, len(list.Results))
	var g errgroup.Group
	for i := range list.Results {
		i := i
		g.Go(func() error {
			results[i] = p.FetchGeneration(ctx, i+1)
			return nil
		})
	}
	_ = g.Wait()

	var all []model.Pokemon
	for _, r := range results {
		all = append(all, r...)
	}

	metrics.RecordIngestionDuration(time.Since(start).Seconds())
	p.log.Info(ctx, "ingestion complete",
		logger.Int("pokemon", len(all)),
		logger.Duration("took", time.Since(start)),
	)
	return all, nil
}
