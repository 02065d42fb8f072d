// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/pokedex/internal/domain/query"
	"github.com/okian/pokedex/pkg/logger"
)

// PokemonHandler handles pokemon read requests.
type PokemonHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewPokemonHandler creates a new pokemon handler.
func NewPokemonHandler(deps Dependencies, maxLimit int) *PokemonHandler {
	return &PokemonHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleList handles GET /api/pokemon requests.
func (h *PokemonHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	search := q.Get("name")
	if search == "" {
		search = q.Get("search")
	}
	if search == "" {
		search = q.Get("id")
	}

	types := q["types"]
	if len(types) == 0 {
		types = q["type"]
	}

	params := query.Params{
		Search: search,
		Types:  types,
	}

	if g := q.Get("generation"); g != "" {
		gen, err := strconv.Atoi(g)
		if err != nil || gen < 1 {
			writeError(w, http.StatusBadRequest, "invalid generation")
			return
		}
		params.Generation = gen
	}

	switch sortField := q.Get("sort"); sortField {
	case "", query.SortByID, query.SortByName:
		params.Sort = sortField
	default:
		writeError(w, http.StatusBadRequest, "invalid sort field")
		return
	}

	switch order := q.Get("order"); order {
	case "", query.OrderAsc, query.OrderDesc:
		params.Order = order
	default:
		writeError(w, http.StatusBadRequest, "invalid sort order")
		return
	}

	page, ok := positiveIntParam(q.Get("page"), query.DefaultPage)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	limit, ok := positiveIntParam(q.Get("limit"), query.DefaultLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit exceeded")
		return
	}

	writeJSON(w, http.StatusOK, h.deps.List(r.Context(), params, page, limit))
}

// HandleGetByID handles GET /api/pokemon/{id} requests.
func (h *PokemonHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid pokemon id")
		return
	}

	p, err := h.deps.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || isNotFound(err) {
			writeError(w, http.StatusNotFound, "pokemon not found")
			return
		}
		logger.Named("api").Error(r.Context(), "get pokemon failed", logger.Int("id", id), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleTypes handles GET /api/pokemon/types requests.
func (h *PokemonHandler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": h.deps.Types(r.Context())})
}

// HandleGenerations handles GET /api/pokemon/generations requests.
func (h *PokemonHandler) HandleGenerations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"generations": h.deps.Generations(r.Context())})
}

// positiveIntParam parses a positive integer query parameter, falling back
// to def when the parameter is absent.
func positiveIntParam(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
