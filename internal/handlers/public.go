package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"scienceheaven/internal/apperror"
	"scienceheaven/internal/models"
	"scienceheaven/internal/store"
)

// Public groups the unauthenticated content handlers.
type Public struct {
	contentStore *store.ContentStore
}

// NewPublic creates a new Public handler group.
func NewPublic(contentStore *store.ContentStore) *Public {
	return &Public{contentStore: contentStore}
}

// List handles GET /api/content: published items matching the query filters.
func (p *Public) List(w http.ResponseWriter, r *http.Request) {
	filters, err := models.FiltersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, apperror.ValidationFailed("", err.Error()))
		return
	}

	items, err := p.contentStore.ListPublic(r.Context(), filters)
	if err != nil {
		slog.Error("list content failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	if items == nil {
		items = []models.Content{}
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/content/{id}. There is deliberately no published
// filter here: any caller holding a valid id can fetch the item, unlike the
// listing path.
func (p *Public) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "Content id must be an integer."))
		return
	}

	item, err := p.contentStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("fetch content failed", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	if item == nil {
		writeError(w, apperror.NotFound("Content", id))
		return
	}

	writeJSON(w, http.StatusOK, item)
}
