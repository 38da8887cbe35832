package handlers

import (
	"net/http"
	"strconv"

	"admindash/internal/service"
)

func (h *API) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Analytics.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, overview)
}

func (h *API) SignupsTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.Analytics.SignupsTrend(r.Context(), daysParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, trend)
}

func (h *API) ActivityTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.Analytics.ActivityTrend(r.Context(), daysParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, trend)
}

func (h *API) SalesTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.Analytics.SalesTrend(r.Context(), daysParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, trend)
}

// RecordEvent manually appends one metric event.
func (h *API) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var in service.RecordEventInput
	if !decodeBody(w, r, &in) {
		return
	}
	event, err := h.Analytics.Record(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, event)
}

// daysParam reads the trailing-window query parameter; 0 means "use the
// configured default".
func daysParam(r *http.Request) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && v > 0 {
		return v
	}
	return 0
}
