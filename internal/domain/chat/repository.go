package chat

import "context"

type Repository interface {
	Create(ctx context.Context, message *Message) error
	// ListRecent returns the newest messages in chronological order.
	ListRecent(ctx context.Context, limit int) ([]Message, error)
}
