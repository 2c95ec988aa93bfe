package member

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByPhone(ctx context.Context, phone string) (*Member, error)
	GetBySessionToken(ctx context.Context, token string) (*Member, error)
	List(ctx context.Context, status string) ([]Member, error)
	Create(ctx context.Context, m *Member) error
	UpdateContact(ctx context.Context, id, name, email string) error
	SetStatus(ctx context.Context, id, status string) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	Delete(ctx context.Context, id string) error
	AddPushToken(ctx context.Context, token *PushToken) error
	AddSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, token string) error
}
