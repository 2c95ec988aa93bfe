package handler

import (
	"errors"
	"net/http"
	"strings"

	authdomain "club-app-go/internal/domain/auth"
	memberdomain "club-app-go/internal/domain/member"
)

type requestCodeRequest struct {
	Phone string `json:"phone"`
}

type requestCodeResponse struct {
	Sent bool   `json:"sent"`
	Code string `json:"code,omitempty"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type sessionResponse struct {
	Token  string                  `json:"token"`
	Member memberdomain.Projection `json:"member"`
}

type adminLoginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

func (h *Handlers) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	result, err := h.Auth.RequestCode(r.Context(), req.Phone)
	if err != nil {
		var notApproved *authdomain.NotApprovedError
		switch {
		case errors.Is(err, memberdomain.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, "invalid_phone", "a valid phone number is required")
		case errors.Is(err, authdomain.ErrNotRegistered):
			h.log.BusinessError("auth.request_code: phone not registered", err)
			writeError(w, http.StatusNotFound, "not_registered", "phone not registered")
		case errors.As(err, &notApproved):
			h.log.BusinessError("auth.request_code: member not approved", err, "status", notApproved.Status)
			writeError(w, http.StatusForbidden, "not_approved", "membership is "+notApproved.Status)
		default:
			h.log.InternalError("auth.request_code: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, requestCodeResponse{Sent: result.Sent, Code: result.Code})
}

func (h *Handlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	req.Code = strings.TrimSpace(req.Code)
	if req.Phone == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone and code are required")
		return
	}

	token, m, err := h.Auth.VerifyCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		var notApproved *authdomain.NotApprovedError
		switch {
		case errors.Is(err, authdomain.ErrBadCredentials):
			h.log.BusinessError("auth.verify_code: bad credentials", err)
			writeError(w, http.StatusUnauthorized, "bad_credentials", "invalid or expired code")
		case errors.As(err, &notApproved):
			h.log.BusinessError("auth.verify_code: member not approved", err, "status", notApproved.Status)
			writeError(w, http.StatusForbidden, "not_approved", "membership is "+notApproved.Status)
		default:
			h.log.InternalError("auth.verify_code: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Member: m.Project()})
}

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || req.PIN == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "phone and pin are required")
		return
	}

	token, m, err := h.Auth.AdminLogin(r.Context(), req.Phone, req.PIN)
	if err != nil {
		var notApproved *authdomain.NotApprovedError
		switch {
		case errors.Is(err, authdomain.ErrPINMismatch):
			h.log.BusinessError("auth.admin_login: pin mismatch", err)
			writeError(w, http.StatusUnauthorized, "bad_credentials", "invalid credentials")
		case errors.Is(err, authdomain.ErrNotRegistered), errors.Is(err, memberdomain.ErrInvalidPhone):
			h.log.BusinessError("auth.admin_login: unknown phone", err)
			writeError(w, http.StatusUnauthorized, "bad_credentials", "invalid credentials")
		case errors.Is(err, authdomain.ErrNotAdmin):
			h.log.BusinessError("auth.admin_login: not an admin", err)
			writeError(w, http.StatusForbidden, "not_admin", "not an admin")
		case errors.As(err, &notApproved):
			h.log.BusinessError("auth.admin_login: member not approved", err, "status", notApproved.Status)
			writeError(w, http.StatusForbidden, "not_approved", "membership is "+notApproved.Status)
		default:
			h.log.InternalError("auth.admin_login: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Member: m.Project()})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerFromHeader(r.Header.Get("Authorization"))
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials")
		return
	}

	if err := h.Auth.Logout(r.Context(), token); err != nil {
		h.log.InternalError("auth.logout: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bearerFromHeader(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
