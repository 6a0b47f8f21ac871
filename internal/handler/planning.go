package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mkral/budget-planner/internal/models"
)

// CreateTransfer handles scheduled transfer creation
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var transfer models.Transfer
	if err := json.NewDecoder(r.Body).Decode(&transfer); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateTransfer(r.Context(), &transfer); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, transfer)
}

// ListTransfers handles scheduled transfer listing
func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.svc.ListTransfers(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transfers)
}

// UpdateTransfer handles scheduled transfer updates
func (h *Handler) UpdateTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var transfer models.Transfer
	if err := json.NewDecoder(r.Body).Decode(&transfer); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	transfer.ID = id
	if err := h.svc.UpdateTransfer(r.Context(), &transfer); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transfer)
}

// DeleteTransfer handles scheduled transfer deletion
func (h *Handler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteTransfer(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateExpense handles fixed expense creation
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateExpense(r.Context(), &expense); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// ListExpenses handles fixed expense listing
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

// UpdateExpense handles fixed expense updates
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	expense.ID = id
	if err := h.svc.UpdateExpense(r.Context(), &expense); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

// DeleteExpense handles fixed expense deletion
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateBudget handles budget category creation
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateBudget(r.Context(), &budget); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, budget)
}

// ListBudgets handles budget category listing
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.ListBudgets(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budgets)
}

// UpdateBudget handles budget category updates
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	budget.ID = id
	if err := h.svc.UpdateBudget(r.Context(), &budget); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// DeleteBudget handles budget category deletion
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
