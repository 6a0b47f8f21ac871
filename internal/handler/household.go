package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mkral/budget-planner/internal/models"
)

// CreateMember handles member creation
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateMember(r.Context(), &member); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// ListMembers handles member listing
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// UpdateMember handles member updates
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	member.ID = id
	if err := h.svc.UpdateMember(r.Context(), &member); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// DeleteMember handles member deletion
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteMember(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateIncome handles income creation
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var income models.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateIncome(r.Context(), &income); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, income)
}

// ListIncomes handles income listing, optionally filtered by member
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("member_id"); v != "" {
		memberID, err := parseID(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid member_id"})
			return
		}
		incomes, err := h.svc.ListMemberIncomes(r.Context(), memberID)
		if err != nil {
			h.respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, incomes)
		return
	}
	incomes, err := h.svc.ListIncomes(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, incomes)
}

// UpdateIncome handles income updates
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var income models.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	income.ID = id
	if err := h.svc.UpdateIncome(r.Context(), &income); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, income)
}

// DeleteIncome handles income deletion
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteIncome(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateBank handles bank creation
func (h *Handler) CreateBank(w http.ResponseWriter, r *http.Request) {
	var bank models.Bank
	if err := json.NewDecoder(r.Body).Decode(&bank); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateBank(r.Context(), &bank); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bank)
}

// ListBanks handles bank listing
func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.svc.ListBanks(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banks)
}

// UpdateBank handles bank updates
func (h *Handler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var bank models.Bank
	if err := json.NewDecoder(r.Body).Decode(&bank); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	bank.ID = id
	if err := h.svc.UpdateBank(r.Context(), &bank); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bank)
}

// DeleteBank handles bank deletion
func (h *Handler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteBank(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.CreateAccount(r.Context(), &account); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

// ListAccounts handles account listing
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

// UpdateAccount handles account updates
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	account.ID = id
	if err := h.svc.UpdateAccount(r.Context(), &account); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// DeleteAccount handles account deletion
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.svc.DeleteAccount(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
