package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	chatdomain "club-app-go/internal/domain/chat"
	"club-app-go/internal/transport/httpserver/middleware"
)

type postMessageRequest struct {
	Body string `json:"body"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	messages, err := h.Chat.Recent(r.Context(), limit)
	if err != nil {
		h.log.InternalError("chat.list: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, toMessageResponse(&m))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials")
		return
	}

	var req postMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	message, err := h.Chat.Post(r.Context(), m, req.Body)
	if err != nil {
		if errors.Is(err, chatdomain.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "invalid_request", "body is required")
			return
		}
		h.log.InternalError("chat.post: failed", err, "member_id", m.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toMessageResponse(message))
}

func toMessageResponse(m *chatdomain.Message) messageResponse {
	return messageResponse{
		ID:         m.ID,
		MemberID:   m.MemberID,
		MemberName: m.MemberName,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}
