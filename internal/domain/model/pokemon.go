// Package model contains domain models passed between layers.
package model

// Pokemon is the flattened record served to clients. One record is built per
// species during ingestion; the collection is immutable once loaded.
type Pokemon struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Height     int             `json:"height"` // decimeters, as reported upstream
	Weight     int             `json:"weight"` // hectograms, as reported upstream
	Generation int             `json:"generation"`
	IsDefault  bool            `json:"is_default"`
	Types      []string        `json:"types"`
	Stats      map[string]int  `json:"stats"`
	Sprites    Sprites         `json:"sprites"`
	Evolutions []EvolutionStep `json:"evolutions"`
}

// Sprites bundles the artwork URLs. Any of them may be missing upstream.
type Sprites struct {
	Sprite       *string `json:"sprite"`
	Default      *string `json:"default"`
	DefaultShiny *string `json:"defaultShiny"`
}

// EvolutionStep is one node of a flattened evolution chain. MinLevel is nil
// for the root form and for evolutions that unlock without a level.
type EvolutionStep struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MinLevel *int   `json:"minLevel,omitempty"`
}
