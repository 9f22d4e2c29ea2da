// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"scienceheaven/internal/apperror"
	"scienceheaven/internal/models"
	"scienceheaven/internal/store"
	"scienceheaven/internal/upload"
)

// formOverhead is the extra request size allowed beyond the image itself
// for multipart boundaries and text fields (the body field alone may run
// to 100k characters).
const formOverhead = 1 << 20

// Admin groups the authenticated content-management handlers.
type Admin struct {
	contentStore *store.ContentStore
	uploads      *upload.Store
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(contentStore *store.ContentStore, uploads *upload.Store) *Admin {
	return &Admin{
		contentStore: contentStore,
		uploads:      uploads,
	}
}

// ListAll handles GET /api/admin/content: every item, including unpublished.
func (a *Admin) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := a.contentStore.ListAll(r.Context())
	if err != nil {
		slog.Error("admin list content failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	if items == nil {
		items = []models.Content{}
	}

	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/admin/content (multipart). The optional
// featuredImage file is staged before the row insert and committed after,
// so a failed insert leaves no file behind.
func (a *Admin) Create(w http.ResponseWriter, r *http.Request) {
	if !a.parseForm(w, r) {
		return
	}

	staged, err := a.uploads.Stage(r, "featuredImage")
	if err != nil {
		writeError(w, err)
		return
	}
	defer staged.Discard()

	in, appErr := parseContentInput(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	if staged != nil {
		path := staged.Path()
		in.FeaturedImage = &path
	}
	if appErr := validateInput(in); appErr != nil {
		writeError(w, appErr)
		return
	}

	created, err := a.contentStore.Create(r.Context(), in)
	if err != nil {
		slog.Error("create content failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create content")
		return
	}

	if staged != nil {
		if err := staged.Commit(); err != nil {
			slog.Error("upload commit failed", "error", err, "content_id", created.ID)
		}
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/admin/content/{id} (multipart, partial). Only
// supplied fields are merged; updated_at is refreshed.
func (a *Admin) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "Content id must be an integer."))
		return
	}

	if !a.parseForm(w, r) {
		return
	}

	staged, stageErr := a.uploads.Stage(r, "featuredImage")
	if stageErr != nil {
		writeError(w, stageErr)
		return
	}
	defer staged.Discard()

	patch, appErr := parseContentPatch(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	if staged != nil {
		path := staged.Path()
		patch.FeaturedImage = &path
	}
	if appErr := validatePatch(patch); appErr != nil {
		writeError(w, appErr)
		return
	}

	updated, err := a.contentStore.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, apperror.NotFound("Content", id))
			return
		}
		slog.Error("update content failed", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to update content")
		return
	}

	if staged != nil {
		if err := staged.Commit(); err != nil {
			slog.Error("upload commit failed", "error", err, "content_id", id)
		}
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/content/{id}. Idempotent: deleting an
// already-absent id still returns 204.
func (a *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "Content id must be an integer."))
		return
	}

	if err := a.contentStore.Delete(r.Context(), id); err != nil {
		slog.Error("delete content failed", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseForm bounds and parses the multipart body. Returns false after
// writing the error response.
func (a *Admin) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxSize+formOverhead)
	if err := r.ParseMultipartForm(upload.MaxSize); err != nil {
		writeMessage(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 5 MB.")
		return false
	}
	return true
}

// parseContentInput reads a full content submission from multipart form
// fields. Tags arrive as a JSON-encoded array field.
func parseContentInput(r *http.Request) (*models.ContentInput, *apperror.AppError) {
	in := &models.ContentInput{
		Title:    r.FormValue("title"),
		Category: models.Category(r.FormValue("category")),
		Kind:     models.Kind(r.FormValue("type")),
		Author:   r.FormValue("author"),
		Excerpt:  formOptional(r, "excerpt"),
		Body:     formOptional(r, "body"),
		VideoURL: formOptional(r, "videoUrl"),
	}

	if raw := r.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Tags); err != nil {
			return nil, apperror.ValidationFailed("tags", "Tags must be a JSON array of strings.")
		}
	}

	if raw := r.FormValue("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperror.ValidationFailed("published", "Published must be a boolean.")
		}
		in.Published = &published
	}

	return in, nil
}

// parseContentPatch reads a partial update: only fields present in the form
// are set, so absent fields stay untouched in the store.
func parseContentPatch(r *http.Request) (*models.ContentPatch, *apperror.AppError) {
	patch := &models.ContentPatch{
		Title:    formPresent(r, "title"),
		Excerpt:  formPresent(r, "excerpt"),
		Body:     formPresent(r, "body"),
		Author:   formPresent(r, "author"),
		VideoURL: formPresent(r, "videoUrl"),
	}

	if v := formPresent(r, "category"); v != nil {
		c := models.Category(*v)
		patch.Category = &c
	}
	if v := formPresent(r, "type"); v != nil {
		k := models.Kind(*v)
		patch.Kind = &k
	}
	if v := formPresent(r, "tags"); v != nil {
		if err := json.Unmarshal([]byte(*v), &patch.Tags); err != nil {
			return nil, apperror.ValidationFailed("tags", "Tags must be a JSON array of strings.")
		}
	}
	if v := formPresent(r, "published"); v != nil {
		published, err := strconv.ParseBool(*v)
		if err != nil {
			return nil, apperror.ValidationFailed("published", "Published must be a boolean.")
		}
		patch.Published = &published
	}

	return patch, nil
}

// formOptional returns a pointer to the field value, or nil when empty.
func formOptional(r *http.Request, key string) *string {
	if v := r.FormValue(key); v != "" {
		return &v
	}
	return nil
}

// formPresent returns a pointer to the field value only when the field was
// sent at all, preserving the supplied-vs-absent distinction a partial
// update depends on.
func formPresent(r *http.Request, key string) *string {
	vals, ok := r.Form[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
