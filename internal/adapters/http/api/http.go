// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/pokedex/internal/adapters/pokeapi"
	"github.com/okian/pokedex/internal/domain/model"
	"github.com/okian/pokedex/internal/domain/query"
	"github.com/okian/pokedex/internal/ratelimit"
	"github.com/okian/pokedex/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// List applies the query parameters and paginates the result.
	List(ctx context.Context, params query.Params, page, limit int) query.Page

	// GetByID returns one pokemon, or a not-found error.
	GetByID(ctx context.Context, id int) (model.Pokemon, error)

	// Types and Generations enumerate the distinct values in the collection.
	Types(ctx context.Context) []string
	Generations(ctx context.Context) []int

	// CacheStats exposes the upstream memo cache counters.
	CacheStats() pokeapi.MemoStats
}

// StatsProvider exposes service statistics for the /stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	pokemonHandler *PokemonHandler
	cacheHandler   *CacheHandler
	statsHandler   *StatsHandler
	limiter        *ratelimit.Limiter
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, limiter *ratelimit.Limiter, maxLimit int) *Server {
	return &Server{
		pokemonHandler: NewPokemonHandler(deps, maxLimit),
		cacheHandler:   NewCacheHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		limiter:        limiter,
	}
}

// Router builds the route tree. Liveness and metrics stay outside the rate
// limit so probes and scrapes are never throttled; everything else sits
// behind the governor.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)

	r.Get("/healthz", MetricsMiddleware(handleHealth, "healthz"))
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter))

		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleGetStats, "stats"))
		r.Route("/api", func(r chi.Router) {
			r.Get("/pokemon", MetricsMiddleware(s.pokemonHandler.HandleList, "pokemon_list"))
			r.Get("/pokemon/types", MetricsMiddleware(s.pokemonHandler.HandleTypes, "pokemon_types"))
			r.Get("/pokemon/generations", MetricsMiddleware(s.pokemonHandler.HandleGenerations, "pokemon_generations"))
			r.Get("/pokemon/{id}", MetricsMiddleware(s.pokemonHandler.HandleGetByID, "pokemon_by_id"))
			r.Get("/cache/stats", MetricsMiddleware(s.cacheHandler.HandleGetStats, "cache_stats"))
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	return r
}

// handleHealth answers liveness probes.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// errorResponse is the uniform error body served to clients.
type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Status: status})
}
