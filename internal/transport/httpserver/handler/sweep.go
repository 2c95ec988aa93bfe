package handler

import (
	"net/http"
	"time"
)

// Sweep is driven by an external scheduler hitting this endpoint; the
// service keeps no timer of its own.
func (h *Handlers) Sweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.Reminder.Sweep(r.Context(), time.Now().UTC())
	if err != nil {
		h.log.InternalError("sweep: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
