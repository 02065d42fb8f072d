package ingest

import (
	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/internal/domain/model"
)

// MapPokemon converts validated upstream records into the flat domain record.
// The generation number is the one under which the species was discovered,
// not a value intrinsic to the pokemon itself.
func MapPokemon(detail *pokeapi.PokemonDetail, chain *pokeapi.EvolutionChain, generation int) model.Pokemon {
	types := make([]string, 0, len(detail.Types))
	for _, t := range detail.Types {
		types = append(types, t.Type.Name)
	}

	// Last write wins if upstream repeats a stat name.
	stats := make(map[string]int, len(detail.Stats))
	for _, s := range detail.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}

	sprites := model.Sprites{Sprite: detail.Sprites.FrontDefault}
	if other := detail.Sprites.Other; other != nil && other.OfficialArtwork != nil {
		sprites.Default = other.OfficialArtwork.FrontDefault
		sprites.DefaultShiny = other.OfficialArtwork.FrontShiny
	}

	evolutions := []model.EvolutionStep{}
	if chain != nil && chain.Chain != nil {
		evolutions = FlattenChain(chain.Chain)
	}

	return model.Pokemon{
		ID:         detail.ID,
		Name:       detail.Name,
		Height:     detail.Height,
		Weight:     detail.Weight,
		Generation: generation,
		IsDefault:  detail.IsDefault,
		Types:      types,
		Stats:      stats,
		Sprites:    sprites,
		Evolutions: evolutions,
	}
}
