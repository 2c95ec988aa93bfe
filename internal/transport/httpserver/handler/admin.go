package handler

import (
	"errors"
	"net/http"

	memberdomain "club-app-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	members, err := h.Members.ListByStatus(r.Context(), status)
	if err != nil {
		if errors.Is(err, memberdomain.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "invalid_request", "status must be pending, approved or rejected")
			return
		}
		h.log.InternalError("admin.list_members: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]memberdomain.Projection, 0, len(members))
	for _, m := range members {
		result = append(result, m.Project())
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) ApproveMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberStatus(w, r, memberdomain.StatusApproved)
}

func (h *Handlers) RejectMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberStatus(w, r, memberdomain.StatusRejected)
}

func (h *Handlers) PromoteMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberAdmin(w, r, true)
}

func (h *Handlers) DemoteMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberAdmin(w, r, false)
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Members.Remove(r.Context(), id); err != nil {
		h.log.InternalError("admin.delete_member: failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setMemberStatus(w http.ResponseWriter, r *http.Request, status string) {
	id := chi.URLParam(r, "id")

	if err := h.Members.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, memberdomain.ErrNotFound) {
			h.log.BusinessError("admin.set_status: member not found", err, "member_id", id)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("admin.set_status: failed", err, "member_id", id, "status", status)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": status})
}

func (h *Handlers) setMemberAdmin(w http.ResponseWriter, r *http.Request, isAdmin bool) {
	id := chi.URLParam(r, "id")

	if err := h.Members.SetAdmin(r.Context(), id, isAdmin); err != nil {
		if errors.Is(err, memberdomain.ErrNotFound) {
			h.log.BusinessError("admin.set_admin: member not found", err, "member_id", id)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("admin.set_admin: failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "is_admin": isAdmin})
}
