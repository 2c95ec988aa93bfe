package handler

import (
	"errors"
	"net/http"
	"time"

	meetingdomain "club-app-go/internal/domain/meeting"
)

type createMeetingRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	StartsAt        string `json:"starts_at"`
	ReminderMinutes int    `json:"reminder_minutes"`
	SendSMS         *bool  `json:"send_sms"`
	SendPush        *bool  `json:"send_push"`
}

type meetingResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	ReminderMinutes int       `json:"reminder_minutes"`
}

func (h *Handlers) ListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.Meetings.List(r.Context())
	if err != nil {
		h.log.InternalError("meetings.list: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]meetingResponse, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, toMeetingResponse(&m))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req createMeetingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	// Both channels default to on.
	sendSMS := req.SendSMS == nil || *req.SendSMS
	sendPush := req.SendPush == nil || *req.SendPush

	m, err := h.Meetings.Create(r.Context(), meetingdomain.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartsAt:        req.StartsAt,
		ReminderMinutes: req.ReminderMinutes,
		SendSMS:         sendSMS,
		SendPush:        sendPush,
	})
	if err != nil {
		switch {
		case errors.Is(err, meetingdomain.ErrTitleRequired),
			errors.Is(err, meetingdomain.ErrStartsAtRequired),
			errors.Is(err, meetingdomain.ErrInvalidStartsAt):
			h.log.BusinessError("meetings.create: invalid input", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("meetings.create: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toMeetingResponse(m))
}

func toMeetingResponse(m *meetingdomain.Meeting) meetingResponse {
	return meetingResponse{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Location:        m.Location,
		StartsAt:        m.StartsAt,
		ReminderMinutes: m.ReminderMinutes,
	}
}
