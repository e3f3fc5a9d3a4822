package search

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/sabledocs/pkg/httputil"
)

// IndexSource returns the current index, or nil while none is built
type IndexSource func() *Index

// Handlers provides HTTP handlers for search
type Handlers struct {
	source IndexSource
}

// NewHandlers creates new search handlers
func NewHandlers(source IndexSource) *Handlers {
	return &Handlers{source: source}
}

// RegisterRoutes registers search routes
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/search", h.search).Methods(http.MethodGet)
}

// search handles GET /api/search?q=...&limit=...
func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	index := h.source()
	if index == nil {
		httputil.WriteServiceUnavailable(w, "search index not ready")
		return
	}

	limit, err := httputil.ParseQueryInt(r, "limit", 20)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	results, err := index.Search(httputil.ParseQueryString(r, "q", ""), limit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, results)
}
