package ingest_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/internal/ingest"
)

func strPtr(s string) *string { return &s }

func TestMapPokemon(t *testing.T) {
	Convey("Given a full upstream detail", t, func() {
		detail := &pokeapi.PokemonDetail{
			ID:        25,
			Name:      "pikachu",
			Height:    4,
			Weight:    60,
			IsDefault: true,
			Types: []pokeapi.TypeSlot{
				{Type: pokeapi.NamedResource{Name: "electric"}},
			},
			Stats: []pokeapi.StatSlot{
				{BaseStat: 35, Stat: pokeapi.NamedResource{Name: "hp"}},
				{BaseStat: 90, Stat: pokeapi.NamedResource{Name: "speed"}},
			},
			Sprites: pokeapi.SpriteSet{
				FrontDefault: strPtr("https://img/pikachu.png"),
				Other: &pokeapi.OtherSprites{
					OfficialArtwork: &pokeapi.Artwork{
						FrontDefault: strPtr("https://img/pikachu-art.png"),
						FrontShiny:   strPtr("https://img/pikachu-shiny.png"),
					},
				},
			},
		}
		chain := &pokeapi.EvolutionChain{Chain: &pokeapi.ChainNode{
			Species: pokeapi.NamedResource{Name: "pichu", URL: "https://x/pokemon-species/172/"},
			EvolvesTo: []pokeapi.ChainNode{{
				Species:          pokeapi.NamedResource{Name: "pikachu", URL: "https://x/pokemon-species/25/"},
				EvolutionDetails: []pokeapi.EvolutionDetail{{MinLevel: intPtr(16)}},
			}},
		}}

		Convey("When mapping with its discovery generation", func() {
			got := ingest.MapPokemon(detail, chain, 1)

			Convey("Then identity and measurements should carry over", func() {
				So(got.ID, ShouldEqual, 25)
				So(got.Name, ShouldEqual, "pikachu")
				So(got.Height, ShouldEqual, 4)
				So(got.Weight, ShouldEqual, 60)
				So(got.Generation, ShouldEqual, 1)
				So(got.IsDefault, ShouldBeTrue)
			})

			Convey("Then types should keep the slot order", func() {
				So(got.Types, ShouldResemble, []string{"electric"})
			})

			Convey("Then stats should key by stat name", func() {
				So(got.Stats, ShouldResemble, map[string]int{"hp": 35, "speed": 90})
			})

			Convey("Then all three sprite variants should be filled", func() {
				So(*got.Sprites.Sprite, ShouldEqual, "https://img/pikachu.png")
				So(*got.Sprites.Default, ShouldEqual, "https://img/pikachu-art.png")
				So(*got.Sprites.DefaultShiny, ShouldEqual, "https://img/pikachu-shiny.png")
			})

			Convey("Then the evolution line should be flattened", func() {
				So(len(got.Evolutions), ShouldEqual, 2)
				So(got.Evolutions[0].Name, ShouldEqual, "pichu")
				So(got.Evolutions[0].MinLevel, ShouldBeNil)
				So(got.Evolutions[1].Name, ShouldEqual, "pikachu")
				So(*got.Evolutions[1].MinLevel, ShouldEqual, 16)
			})
		})
	})

	Convey("Given a detail with repeated stat names", t, func() {
		detail := &pokeapi.PokemonDetail{
			ID:   1,
			Name: "bulbasaur",
			Stats: []pokeapi.StatSlot{
				{BaseStat: 45, Stat: pokeapi.NamedResource{Name: "hp"}},
				{BaseStat: 50, Stat: pokeapi.NamedResource{Name: "hp"}},
			},
		}

		Convey("When mapping", func() {
			got := ingest.MapPokemon(detail, nil, 1)

			Convey("Then the last value should win", func() {
				So(got.Stats["hp"], ShouldEqual, 50)
			})
		})
	})

	Convey("Given a detail with no artwork block", t, func() {
		detail := &pokeapi.PokemonDetail{ID: 1, Name: "bulbasaur"}

		Convey("When mapping without a chain", func() {
			got := ingest.MapPokemon(detail, nil, 2)

			Convey("Then sprites should stay nil without panicking", func() {
				So(got.Sprites.Sprite, ShouldBeNil)
				So(got.Sprites.Default, ShouldBeNil)
				So(got.Sprites.DefaultShiny, ShouldBeNil)
			})

			Convey("Then evolutions should be empty, not nil", func() {
				So(got.Evolutions, ShouldNotBeNil)
				So(got.Evolutions, ShouldBeEmpty)
			})
		})
	})
}
