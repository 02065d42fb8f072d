package pokeapi

import (
	"fmt"
	"strconv"
)

// invalidf wraps ErrInvalidPayload with the violating field path.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

// Validate checks the structural shape of a generation list payload.
func (g *GenerationList) Validate() error {
	if g.Results == nil {
		return invalidf("results")
	}
	for i, r := range g.Results {
		if r.Name == "" {
			return invalidf("results[%d].name", i)
		}
		if r.URL == "" {
			return invalidf("results[%d].url", i)
		}
	}
	return nil
}

// Validate checks the structural shape of a generation detail payload.
// An absent species list is legal; the caller decides whether to skip.
func (g *Generation) Validate() error {
	if g.ID < 1 {
		return invalidf("id")
	}
	if g.Name == "" {
		return invalidf("name")
	}
	for i, s := range g.PokemonSpecies {
		if s.Name == "" || s.URL == "" {
			return invalidf("pokemon_species[%d]", i)
		}
	}
	return nil
}

// Validate checks the structural shape of a species detail payload.
func (s *Species) Validate() error {
	if len(s.Varieties) == 0 {
		return invalidf("varieties")
	}
	for i, v := range s.Varieties {
		if v.Pokemon.URL == "" {
			return invalidf("varieties[%d].pokemon.url", i)
		}
	}
	if s.EvolutionChain.URL == "" {
		return invalidf("evolution_chain.url")
	}
	return nil
}

// Validate checks the structural shape of a pokemon detail payload.
func (p *PokemonDetail) Validate() error {
	if p.ID < 1 {
		return invalidf("id")
	}
	if p.Name == "" {
		return invalidf("name")
	}
	for i, t := range p.Types {
		if t.Type.Name == "" {
			return invalidf("types[%d].type.name", i)
		}
	}
	for i, st := range p.Stats {
		if st.Stat.Name == "" {
			return invalidf("stats[%d].stat.name", i)
		}
	}
	return nil
}

// Validate checks the structural shape of an evolution chain payload,
// walking the whole recursive tree.
func (e *EvolutionChain) Validate() error {
	if e.Chain == nil {
		return invalidf("chain")
	}
	return e.Chain.validate("chain")
}

func (n *ChainNode) validate(path string) error {
	if n.Species.Name == "" {
		return invalidf("%s.species.name", path)
	}
	if n.Species.URL == "" {
		return invalidf("%s.species.url", path)
	}
	for i := range n.EvolvesTo {
		child := path + ".evolves_to[" + strconv.Itoa(i) + "]"
		if err := n.EvolvesTo[i].validate(child); err != nil {
			return err
		}
	}
	return nil
}
