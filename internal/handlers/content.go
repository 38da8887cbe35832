package handlers

import (
	"net/http"

	"admindash/internal/auth"
	"admindash/internal/model"
	"admindash/internal/repository"
	"admindash/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *API) ListContent(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := repository.ContentFilter{
		Status:      model.ContentStatus(r.URL.Query().Get("status")),
		ContentType: model.ContentType(r.URL.Query().Get("contentType")),
	}
	items, pagination, err := h.Content.List(r.Context(), filter, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePage(w, items, pagination)
}

// GetContent returns one item and increments its view counter.
func (h *API) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.Content.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, content)
}

func (h *API) CreateContent(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	var in service.CreateContentInput
	if !decodeBody(w, r, &in) {
		return
	}
	content, err := h.Content.Create(r.Context(), identity.UserID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, content)
}

func (h *API) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateContentInput
	if !decodeBody(w, r, &in) {
		return
	}
	content, err := h.Content.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, content)
}

func (h *API) DeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Content deleted successfully")
}

func (h *API) ContentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Content.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, stats)
}
