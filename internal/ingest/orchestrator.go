package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pokedex/internal/domain/model"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// FetchGeneration loads every species of one generation in fixed-size
// batches. It never fails wholesale: a missing generation or species list
// yields an empty result with a warning, and a single species failure only
// drops that species. Result order follows the upstream species order.
func (p *Pipeline) FetchGeneration(ctx context.Context, genID int) []model.Pokemon {
	gen, err := p.fetcher.Generation(ctx, genID)
	if err != nil {
		p.log.Warn(ctx, "skipping generation", logger.Int("generation", genID), logger.Error(err))
		return nil
	}
	if len(gen.PokemonSpecies) == 0 {
		p.log.Warn(ctx, "no species data for generation", logger.Int("generation", genID))
		return nil
	}

	batches := chunk(gen.PokemonSpecies, p.batchSize)

	var out []model.Pokemon
	for bi, batch := range batches {
		// Index-addressed slots keep results in input order regardless of
		// completion order; failed species leave nil slots.
		slots := make([]*model.Pokemon, len(batch))
		var g errgroup.Group
		for i, species := range batch {
			i, species := i, species
			g.Go(func() error {
				pk, err := p.fetchOne(ctx, species.URL, genID)
				if err != nil {
					metrics.RecordSpeciesSkipped()
					p.log.Warn(ctx, "skipping species",
						logger.String("species", species.Name),
						logger.Error(err),
					)
					return nil
				}
				slots[i] = pk
				return nil
			})
		}
		_ = g.Wait()

		fetched := 0
		for _, s := range slots {
			if s != nil {
				out = append(out, *s)
				fetched++
			}
		}
		p.log.Info(ctx, "batch complete",
			logger.Int("generation", genID),
			logger.Int("batch", bi+1),
			logger.Int("batches", len(batches)),
			logger.Int("pokemon", fetched),
		)
	}
	return out
}

// fetchOne resolves one species into a mapped domain record: species detail,
// default variety's pokemon detail, then the evolution chain.
func (p *Pipeline) fetchOne(ctx context.Context, speciesURL string, genID int) (*model.Pokemon, error) {
	species, err := p.fetcher.Species(ctx, speciesURL)
	if err != nil {
		return nil, err
	}

	detail, err := p.fetcher.Pokemon(ctx, species.Varieties[0].Pokemon.URL)
	if err != nil {
		return nil, err
	}

	chain, err := p.fetcher.EvolutionChain(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, err
	}

	pk := MapPokemon(detail, chain, genID)
	return &pk, nil
}

// chunk partitions list into fixed-size batches, the last one possibly short.
func chunk[T any](list []T, size int) [][]T {
	var batches [][]T
	for len(list) > size {
		batches = append(batches, list[:size])
		list = list[size:]
	}
	if len(list) > 0 {
		batches = append(batches, list)
	}
	return batches
}
