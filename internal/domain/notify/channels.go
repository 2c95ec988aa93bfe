package notify

import "context"

// PushMessage is one provider-bound push notification.
type PushMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

// SMSChannel delivers one message to one phone. An unconfigured channel
// reports Enabled() == false and the dispatcher skips it silently.
type SMSChannel interface {
	Enabled() bool
	Send(ctx context.Context, to, body string) error
}

// PushChannel batches messages into provider-sized chunks and delivers
// them chunk by chunk.
type PushChannel interface {
	Enabled() bool
	IsValidToken(token string) bool
	Chunk(messages []PushMessage) [][]PushMessage
	SendChunk(ctx context.Context, chunk []PushMessage) error
}
