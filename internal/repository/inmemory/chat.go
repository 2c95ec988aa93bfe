package inmemory

import (
	"context"
	"sync"
	"time"

	chatdomain "club-app-go/internal/domain/chat"
)

type ChatRepository struct {
	mu       sync.Mutex
	messages []chatdomain.Message
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

func (r *ChatRepository) Create(ctx context.Context, message *chatdomain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}
	r.messages = append(r.messages, copied)
	return nil
}

func (r *ChatRepository) ListRecent(ctx context.Context, limit int) ([]chatdomain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := 0
	if len(r.messages) > limit {
		start = len(r.messages) - limit
	}
	result := make([]chatdomain.Message, len(r.messages)-start)
	copy(result, r.messages[start:])
	return result, nil
}
