package handler

import (
	"errors"
	"net/http"

	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PushToken string `json:"push_token"`
}

type registerResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	m, err := h.Members.RegisterOrTouch(r.Context(), memberdomain.RegisterInput{
		Phone:     req.Phone,
		Name:      req.Name,
		Email:     req.Email,
		PushToken: req.PushToken,
	})
	if err != nil {
		if errors.Is(err, memberdomain.ErrInvalidPhone) {
			h.log.BusinessError("members.register: invalid phone", err)
			writeError(w, http.StatusBadRequest, "invalid_phone", "a valid phone number is required")
			return
		}
		h.log.InternalError("members.register: register failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{ID: m.ID, Status: m.Status})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, m.Project())
}
