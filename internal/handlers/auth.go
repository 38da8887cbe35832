package handlers

import (
	"net/http"

	"admindash/internal/auth"
	"admindash/internal/service"
)

// Signup creates an account and returns an issued token.
func (h *API) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	if !decodeBody(w, r, &in) {
		return
	}
	user, err := h.Auth.Signup(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, user)
}

// Login authenticates and returns a token plus the public user fields.
func (h *API) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeBody(w, r, &in) {
		return
	}
	user, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

// Me returns the caller's profile.
func (h *API) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.RequireIdentity(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	user, err := h.Auth.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}
