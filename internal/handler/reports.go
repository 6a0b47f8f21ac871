package handler

import (
	"net/http"
)

// Summary handles the household aggregate report
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.SummaryReport(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Timeline handles the monthly transfer timeline report
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.svc.TimelineReport(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, timeline)
}

// CashFlow handles the per-account cash-flow simulation report
func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year or month"})
		return
	}
	flows, err := h.svc.CashFlowReport(r.Context(), year, month)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flows)
}

// GoalRecommendations handles the goal recommendation report
func (h *Handler) GoalRecommendations(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year or month"})
		return
	}
	recommendations, err := h.svc.GoalsReport(r.Context(), year, month)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recommendations)
}
