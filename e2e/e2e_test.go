package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"club-app-go/internal/config"
	authdomain "club-app-go/internal/domain/auth"
	chatdomain "club-app-go/internal/domain/chat"
	meetingdomain "club-app-go/internal/domain/meeting"
	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/internal/domain/notify"
	"club-app-go/internal/domain/reminder"
	"club-app-go/internal/repository/inmemory"
	"club-app-go/internal/transport/httpserver"
	"club-app-go/internal/transport/httpserver/handler"
	"club-app-go/internal/transport/ws"
	"club-app-go/pkg/logger"
)

const (
	adminPIN    = "4321"
	sweepSecret = "sweep-secret"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.New(io.Discard, slog.LevelError, "text")

	members := memberdomain.NewService(inmemory.NewMemberRepository())
	meetingRepo := inmemory.NewMeetingRepository()
	chatService := chatdomain.NewService(inmemory.NewChatRepository())

	authService := authdomain.NewService(members, inmemory.NewOTPStore(), nil, authdomain.Config{
		AdminPIN:     adminPIN,
		CodeTTL:      10 * time.Minute,
		EchoFallback: true,
	}, log)

	notifyService := notify.NewService(members, nil, nil, log)
	meetingService := meetingdomain.NewService(meetingRepo, notifyService)
	reminderService := reminder.NewService(meetingRepo, notifyService, reminder.Config{}, log)

	handlers := handler.New(members, authService, meetingService, reminderService, chatService, log)
	hub := ws.NewHub(chatService, authService, log)

	cfg := config.Config{
		AdminPIN:    adminPIN,
		SweepSecret: sweepSecret,
		CORSOrigins: []string{"*"},
	}
	router := httpserver.NewRouter(cfg, handlers, authService, hub)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, url string, headers map[string]string) (*http.Response, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// registerAndLogin walks a fresh member through registration, admin
// approval and OTP login, returning the member id and session token.
func registerAndLogin(t *testing.T, base, phone, name string) (string, string) {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, base+"/api/members", map[string]any{
		"phone": phone,
		"name":  name,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	memberID := body["id"].(string)

	resp, _ = doJSON(t, http.MethodPost, base+"/api/admin/members/"+memberID+"/approve", nil,
		map[string]string{"X-Admin-Pin": adminPIN})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/request-code", map[string]any{"phone": phone}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code := body["code"].(string)

	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/verify-code", map[string]any{
		"phone": phone,
		"code":  code,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return memberID, body["token"].(string)
}

func TestMembershipLifecycle(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	// Registration lands in pending.
	resp, body := doJSON(t, http.MethodPost, base+"/api/members", map[string]any{
		"phone": "(555) 123-4567",
		"name":  "Ada",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pending", body["status"])
	memberID := body["id"].(string)
	require.NotEmpty(t, memberID)

	// Pending members cannot request a login code.
	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/request-code", map[string]any{
		"phone": "5551234567",
	}, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "not_approved", body["error"].(map[string]any)["code"])

	// Admin surface is gated by the PIN.
	resp, _ = doJSON(t, http.MethodPost, base+"/api/admin/members/"+memberID+"/approve", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/api/admin/members/"+memberID+"/approve", nil,
		map[string]string{"X-Admin-Pin": adminPIN})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// With no SMS provider configured the code comes back in the response.
	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/request-code", map[string]any{
		"phone": "5551234567",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["sent"])
	code := body["code"].(string)
	require.Len(t, code, 6)

	// A wrong code is rejected without consuming the real one.
	resp, _ = doJSON(t, http.MethodPost, base+"/api/auth/verify-code", map[string]any{
		"phone": "5551234567",
		"code":  "000000",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/verify-code", map[string]any{
		"phone": "5551234567",
		"code":  code,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// The member payload never leaks credentials.
	memberPayload := body["member"].(map[string]any)
	require.Equal(t, "+15551234567", memberPayload["phone"])
	require.NotContains(t, memberPayload, "sessions")
	require.NotContains(t, memberPayload, "push_tokens")

	authHeader := map[string]string{"Authorization": "Bearer " + token}

	resp, body = doJSON(t, http.MethodGet, base+"/api/auth/me", nil, authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Ada", body["name"])

	resp, _ = doJSON(t, http.MethodPost, base+"/api/auth/logout", nil, authHeader)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, base+"/api/auth/me", nil, authHeader)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeetingAnnouncementAndReminderSweep(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	_, token := registerAndLogin(t, base, "5551234567", "Ada")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// No meetings yet.
	resp, meetings := doJSONList(t, base+"/api/meetings", authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, meetings)

	// Creating a meeting needs the admin PIN.
	startsAt := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	payload := map[string]any{
		"title":     "Board meeting",
		"location":  "Clubhouse",
		"starts_at": startsAt,
	}
	resp, _ = doJSON(t, http.MethodPost, base+"/api/meetings", payload, authHeader)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, base+"/api/meetings", payload,
		map[string]string{"X-Admin-Pin": adminPIN})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	meetingID := body["id"].(string)
	require.Equal(t, float64(60), body["reminder_minutes"])

	resp, meetings = doJSONList(t, base+"/api/meetings", authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, meetings, 1)
	require.Equal(t, "Board meeting", meetings[0]["title"])

	// The sweep has its own secret; the admin PIN does not open it.
	resp, _ = doJSON(t, http.MethodPost, base+"/api/sweep", nil,
		map[string]string{"X-Sweep-Secret": adminPIN})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, base+"/api/sweep", nil,
		map[string]string{"X-Sweep-Secret": sweepSecret})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notified := body["meetings_notified"].([]any)
	require.Len(t, notified, 1)
	require.Equal(t, meetingID, notified[0])

	// A second sweep must not renotify.
	resp, body = doJSON(t, http.MethodPost, base+"/api/sweep", nil,
		map[string]string{"X-Sweep-Secret": sweepSecret})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body["meetings_notified"])
}

func TestGroupChatOverRESTAndWebsocket(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	_, token := registerAndLogin(t, base, "5551234567", "Ada")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	resp, body := doJSON(t, http.MethodPost, base+"/api/chat/messages", map[string]any{
		"body": "hello everyone",
	}, authHeader)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Ada", body["member_name"])

	resp, messages := doJSONList(t, base+"/api/chat/messages", authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, messages, 1)
	require.Equal(t, "hello everyone", messages[0]["body"])

	// A bad token never upgrades.
	wsURL := "ws" + strings.TrimPrefix(base, "http") + "/api/chat/ws"
	_, badResp, err := websocket.DefaultDialer.Dial(wsURL+"?token=bogus", nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, badResp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{
		"type": "chat:send",
		"body": "hi from the socket",
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event struct {
		Type    string `json:"type"`
		Message struct {
			MemberName string `json:"member_name"`
			Body       string `json:"body"`
		} `json:"message"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, "chat:new", event.Type)
	require.Equal(t, "hi from the socket", event.Message.Body)
	require.Equal(t, "Ada", event.Message.MemberName)

	// The socket message lands in the shared history.
	resp, messages = doJSONList(t, base+"/api/chat/messages", authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, messages, 2)
}

func TestAdminLoginFlow(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	memberID, _ := registerAndLogin(t, base, "5551234567", "Ada")

	// Approved but not an admin yet.
	resp, body := doJSON(t, http.MethodPost, base+"/api/auth/admin-login", map[string]any{
		"phone": "5551234567",
		"pin":   adminPIN,
	}, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "not_admin", body["error"].(map[string]any)["code"])

	resp, _ = doJSON(t, http.MethodPost, base+"/api/admin/members/"+memberID+"/promote", nil,
		map[string]string{"X-Admin-Pin": adminPIN})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Wrong PIN and unknown phone collapse into the same answer.
	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/admin-login", map[string]any{
		"phone": "5551234567",
		"pin":   "0000",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "bad_credentials", body["error"].(map[string]any)["code"])

	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/admin-login", map[string]any{
		"phone": "5550000000",
		"pin":   adminPIN,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "bad_credentials", body["error"].(map[string]any)["code"])

	resp, body = doJSON(t, http.MethodPost, base+"/api/auth/admin-login", map[string]any{
		"phone": "5551234567",
		"pin":   adminPIN,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body["token"])
	require.Equal(t, true, body["member"].(map[string]any)["is_admin"])
}

func TestRejectionLocksOutLiveSessions(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	memberID, token := registerAndLogin(t, base, "5551234567", "Ada")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	resp, _ := doJSON(t, http.MethodGet, base+"/api/auth/me", nil, authHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/api/admin/members/"+memberID+"/reject", nil,
		map[string]string{"X-Admin-Pin": adminPIN})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, base+"/api/auth/me", nil, authHeader)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
