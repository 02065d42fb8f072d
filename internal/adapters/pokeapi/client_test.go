package pokeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream serving JSON", t, func() {
		var hits int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt64(&hits, 1)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client := pokeapi.New(pokeapi.WithBaseURL(srv.URL))

		Convey("When fetching a resource", func() {
			body, err := client.Get(ctx, srv.URL+"/thing")

			Convey("Then the raw body should be returned", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `{"ok":true}`)
			})
		})

		Convey("When a memo cache is attached", func() {
			memo := pokeapi.NewMemo()
			cached := pokeapi.New(pokeapi.WithBaseURL(srv.URL), pokeapi.WithMemo(memo))

			first, err1 := cached.Get(ctx, srv.URL+"/thing")
			second, err2 := cached.Get(ctx, srv.URL+"/thing")

			Convey("Then the second fetch should not hit the network", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(string(second), ShouldEqual, string(first))
				So(atomic.LoadInt64(&hits), ShouldEqual, 1)
			})

			Convey("Then the cache counters should reflect both lookups", func() {
				stats := memo.Stats()
				So(stats.Hits, ShouldEqual, 1)
				So(stats.Misses, ShouldEqual, 1)
				So(stats.Size, ShouldEqual, 1)
				So(stats.HitRate, ShouldEqual, "50.0%")
			})

			Convey("Then a reset should clear entries and counters", func() {
				memo.Reset()
				stats := memo.Stats()
				So(stats.Size, ShouldEqual, 0)
				So(stats.Hits, ShouldEqual, 0)
				So(stats.HitRate, ShouldEqual, "0%")

				_, err := cached.Get(ctx, srv.URL+"/thing")
				So(err, ShouldBeNil)
				So(atomic.LoadInt64(&hits), ShouldEqual, 2)
			})
		})
	})

	Convey("Given an upstream that rejects trailing slashes", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/thing/" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client := pokeapi.New(pokeapi.WithBaseURL(srv.URL))

		Convey("When fetching with a trailing slash", func() {
			body, err := client.Get(ctx, srv.URL+"/thing/")

			Convey("Then the retry without the slash should succeed", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `{"ok":true}`)
			})
		})
	})

	Convey("Given an upstream that always errors", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := pokeapi.New(pokeapi.WithBaseURL(srv.URL))

		Convey("When fetching without a trailing slash", func() {
			_, err := client.Get(ctx, srv.URL+"/thing")

			Convey("Then no retry should happen and the status should surface", func() {
				So(errors.Is(err, pokeapi.ErrStatus), ShouldBeTrue)
			})
		})

		Convey("When fetching with a trailing slash", func() {
			_, err := client.Get(ctx, srv.URL+"/thing/")

			Convey("Then the retry should also fail with a status error", func() {
				So(errors.Is(err, pokeapi.ErrStatus), ShouldBeTrue)
			})
		})
	})

	Convey("Given an upstream serving a non-JSON body", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		}))
		defer srv.Close()

		client := pokeapi.New(pokeapi.WithBaseURL(srv.URL))

		Convey("When fetching", func() {
			_, err := client.Get(ctx, srv.URL+"/thing")

			Convey("Then decoding should be rejected", func() {
				So(errors.Is(err, pokeapi.ErrDecode), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		client := pokeapi.New()

		Convey("When fetching a bogus URL", func() {
			_, err := client.Get(ctx, "http://127.0.0.1:1/thing")

			Convey("Then a fetch error should be returned", func() {
				So(errors.Is(err, pokeapi.ErrFetch), ShouldBeTrue)
			})
		})
	})
}

func TestTypedFetchers(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream serving generation resources", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/generation/":
				_, _ = w.Write([]byte(`{"results":[{"name":"generation-i","url":"https://x/generation/1/"}]}`))
			case "/generation/1":
				_, _ = w.Write([]byte(`{"id":1,"name":"generation-i","pokemon_species":[{"name":"bulbasaur","url":"https://x/pokemon-species/1/"}]}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		client := pokeapi.New(pokeapi.WithBaseURL(srv.URL))

		Convey("When listing generations", func() {
			got, err := client.GenerationList(ctx)

			Convey("Then the index should decode", func() {
				So(err, ShouldBeNil)
				So(len(got.Results), ShouldEqual, 1)
				So(got.Results[0].Name, ShouldEqual, "generation-i")
			})
		})

		Convey("When fetching one generation", func() {
			got, err := client.Generation(ctx, 1)

			Convey("Then the detail should decode", func() {
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, 1)
				So(len(got.PokemonSpecies), ShouldEqual, 1)
			})
		})
	})

	Convey("Given an upstream serving a structurally invalid payload", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"name":"generation-i","url":""}]}`))
		}))
		defer srv.Close()

		client := pokeapi.New(pokeapi.WithBaseURL(srv.URL))

		Convey("When listing generations", func() {
			_, err := client.GenerationList(ctx)

			Convey("Then validation should reject the payload", func() {
				So(errors.Is(err, pokeapi.ErrInvalidPayload), ShouldBeTrue)
			})
		})
	})
}
