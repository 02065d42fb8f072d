package ingest

import (
	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/internal/domain/model"
)

// FlattenChain converts a recursive evolution tree into a flat, ordered list
// of evolution steps via pre-order depth-first traversal: a node is emitted
// before its children, and each child subtree is fully expanded before the
// next sibling. The root step carries no minimum level; every other step
// carries the min_level of the first evolution_details entry that leads to
// it. Upstream sometimes lists alternate unlock conditions; only the first
// is kept, matching the served contract.
func FlattenChain(root *pokeapi.ChainNode) []model.EvolutionStep {
	return flattenFrom(root, nil)
}

func flattenFrom(node *pokeapi.ChainNode, minLevel *int) []model.EvolutionStep {
	steps := []model.EvolutionStep{{
		Name:     node.Species.Name,
		URL:      node.Species.URL,
		MinLevel: minLevel,
	}}

	for i := range node.EvolvesTo {
		child := &node.EvolvesTo[i]
		var lvl *int
		if len(child.EvolutionDetails) > 0 {
			lvl = child.EvolutionDetails[0].MinLevel
		}
		steps = append(steps, flattenFrom(child, lvl)...)
	}
	return steps
}
