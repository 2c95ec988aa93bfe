// Package ws relays group-chat events over websockets. Connections
// authenticate with the same session tokens as the REST surface.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	chatdomain "club-app-go/internal/domain/chat"
	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/pkg/logger"
	"github.com/gorilla/websocket"
)

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*memberdomain.Member, error)
}

type inboundEvent struct {
	Type string `json:"type"`
	Body string `json:"body"`
}

type outboundEvent struct {
	Type    string      `json:"type"`
	Message wireMessage `json:"message"`
}

type wireMessage struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type Hub struct {
	chat     *chatdomain.Service
	sessions SessionResolver
	upgrader websocket.Upgrader
	log      logger.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub(chat *chatdomain.Service, sessions SessionResolver, log logger.Logger) *Hub {
	return &Hub{
		chat:     chat,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handle upgrades the connection and relays chat:send events back out
// as chat:new to every connected client.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	m, err := h.sessions.ResolveSession(r.Context(), token)
	if err != nil {
		http.Error(w, "missing or invalid credentials", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.BusinessError("ws: upgrade failed", err)
		return
	}

	h.add(conn)
	defer h.remove(conn)

	for {
		var event inboundEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}
		if event.Type != "chat:send" {
			continue
		}

		message, err := h.chat.Post(r.Context(), m, event.Body)
		if err != nil {
			h.log.BusinessError("ws: post message failed", err, "member_id", m.ID)
			continue
		}

		h.broadcast(outboundEvent{
			Type: "chat:new",
			Message: wireMessage{
				ID:         message.ID,
				MemberID:   message.MemberID,
				MemberName: message.MemberName,
				Body:       message.Body,
				CreatedAt:  message.CreatedAt,
			},
		})
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) broadcast(event outboundEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.log.Debug("ws: write failed, dropping client", "err", err)
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}
