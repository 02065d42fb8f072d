// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// CacheHandler handles upstream memo cache introspection requests.
type CacheHandler struct {
	deps Dependencies
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(deps Dependencies) *CacheHandler {
	return &CacheHandler{deps: deps}
}

// HandleGetStats handles GET /api/cache/stats requests.
func (h *CacheHandler) HandleGetStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.CacheStats())
}
