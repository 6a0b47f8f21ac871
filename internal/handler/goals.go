package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

// CreateGoal handles goal creation
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateGoal(r.Context(), &goal); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// GetGoal handles single goal retrieval
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	goal, err := h.svc.GetGoal(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// ListGoals handles goal listing
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.ListGoals(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// UpdateGoal handles goal updates
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	goal.ID = id
	if err := h.svc.UpdateGoal(r.Context(), &goal); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoal handles goal deletion
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteGoal(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type fundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ContributeFund handles a deposit into a fund goal
func (h *Handler) ContributeFund(w http.ResponseWriter, r *http.Request) {
	h.adjustFund(w, r, false)
}

// WithdrawFund handles a withdrawal from a fund goal
func (h *Handler) WithdrawFund(w http.ResponseWriter, r *http.Request) {
	h.adjustFund(w, r, true)
}

func (h *Handler) adjustFund(w http.ResponseWriter, r *http.Request, withdraw bool) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req fundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	var goal *models.Goal
	if withdraw {
		goal, err = h.svc.WithdrawFund(r.Context(), id, req.Amount)
	} else {
		goal, err = h.svc.ContributeFund(r.Context(), id, req.Amount)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GetPlan handles monthly plan retrieval for a goal
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	year, month, err := yearMonth(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year or month"})
		return
	}
	plan, err := h.svc.GetPlan(r.Context(), id, year, month)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// SavePlan handles monthly plan upserts for a goal
func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var plan models.MonthlyPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	plan.GoalID = id
	if err := h.svc.SavePlan(r.Context(), &plan); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// ListPlans handles monthly plan listing for a month
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year or month"})
		return
	}
	plans, err := h.svc.ListPlans(r.Context(), year, month)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plans)
}
