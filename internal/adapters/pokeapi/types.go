// Package pokeapi implements the upstream PokeAPI client: fetching,
// payload validation, and per-URL memoization.
package pokeapi

// NamedResource is the upstream {name, url} reference pair.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceRef is an upstream reference carrying only a URL.
type ResourceRef struct {
	URL string `json:"url"`
}

// GenerationList mirrors GET /generation/.
type GenerationList struct {
	Results []NamedResource `json:"results"`
}

// Generation mirrors GET /generation/{id}.
type Generation struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

// Species mirrors the subset of GET /pokemon-species/{id} we consume.
type Species struct {
	Varieties      []Variety   `json:"varieties"`
	EvolutionChain ResourceRef `json:"evolution_chain"`
}

// Variety wraps the pokemon reference inside a species' variety list.
type Variety struct {
	Pokemon ResourceRef `json:"pokemon"`
}

// PokemonDetail mirrors the subset of GET /pokemon/{id} we consume.
type PokemonDetail struct {
	Name      string     `json:"name"`
	ID        int        `json:"id"`
	IsDefault bool       `json:"is_default"`
	Weight    int        `json:"weight"`
	Height    int        `json:"height"`
	Types     []TypeSlot `json:"types"`
	Stats     []StatSlot `json:"stats"`
	Sprites   SpriteSet  `json:"sprites"`
}

// TypeSlot wraps a type reference.
type TypeSlot struct {
	Type NamedResource `json:"type"`
}

// StatSlot pairs a base value with its stat reference.
type StatSlot struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// SpriteSet mirrors the sprite bundle. Every URL may be null upstream and
// nested objects may be absent entirely.
type SpriteSet struct {
	FrontDefault *string       `json:"front_default"`
	Other        *OtherSprites `json:"other"`
}

// OtherSprites holds the official-artwork sub-bundle.
type OtherSprites struct {
	OfficialArtwork *Artwork `json:"official-artwork"`
}

// Artwork holds the official artwork URLs.
type Artwork struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

// EvolutionChain mirrors GET /evolution-chain/{id}.
type EvolutionChain struct {
	Chain *ChainNode `json:"chain"`
}

// ChainNode is one node of the recursive evolution tree.
type ChainNode struct {
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainNode       `json:"evolves_to"`
}

// EvolutionDetail carries the unlock condition for an evolution step.
// MinLevel is null for evolutions that unlock by other means.
type EvolutionDetail struct {
	MinLevel *int `json:"min_level"`
}
