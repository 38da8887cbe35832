package handlers

import (
	"net/http"
	"strconv"

	"admindash/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pagination, err := h.Users.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writePage(w, users, pagination)
}

func (h *API) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

func (h *API) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateUserInput
	if !decodeBody(w, r, &in) {
		return
	}
	user, err := h.Users.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

func (h *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *API) BanUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Ban(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

func (h *API) UnbanUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Unban(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

func (h *API) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Users.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, stats)
}

// pageParams reads page/limit query parameters with the shared defaults.
func pageParams(r *http.Request) (page, limit int64) {
	page, limit = 1, 10
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}
