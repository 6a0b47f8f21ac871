package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mkral/budget-planner/internal/service"
)

// ExportBackup handles a full household data export
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	archive, err := h.svc.ExportBackup(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=backup-"+archive.ArchiveID+".json")
	respondJSON(w, http.StatusOK, archive)
}

// ImportBackup handles a full household data restore
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	var archive service.BackupArchive
	if err := json.NewDecoder(r.Body).Decode(&archive); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.svc.ImportBackup(r.Context(), &archive); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "imported", "archive_id": archive.ArchiveID})
}
