package inmemory

import (
	"context"
	"sort"
	"sync"

	memberdomain "club-app-go/internal/domain/member"
)

// MemberRepository is a mutex-guarded in-memory implementation used by
// tests and the scenario suite.
type MemberRepository struct {
	mu       sync.RWMutex
	members  map[string]*memberdomain.Member
	byPhone  map[string]string
	sessions map[string]string // token -> member id
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		members:  make(map[string]*memberdomain.Member),
		byPhone:  make(map[string]string),
		sessions: make(map[string]string),
	}
}

func (r *MemberRepository) Transaction(ctx context.Context, fn func(memberdomain.Repository) error) error {
	return fn(r)
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return nil, memberdomain.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *MemberRepository) GetByPhone(ctx context.Context, phone string) (*memberdomain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPhone[phone]
	if !ok {
		return nil, memberdomain.ErrNotFound
	}
	copied := *r.members[id]
	return &copied, nil
}

func (r *MemberRepository) GetBySessionToken(ctx context.Context, token string) (*memberdomain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.sessions[token]
	if !ok {
		return nil, memberdomain.ErrNotFound
	}
	m, ok := r.members[id]
	if !ok {
		return nil, memberdomain.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *MemberRepository) List(ctx context.Context, status string) ([]memberdomain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]memberdomain.Member, 0, len(r.members))
	for _, m := range r.members {
		if status != "" && m.Status != status {
			continue
		}
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemberRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[m.Phone]; ok {
		return memberdomain.ErrPhoneTaken
	}
	copied := *m
	r.members[m.ID] = &copied
	r.byPhone[m.Phone] = m.ID
	return nil
}

func (r *MemberRepository) UpdateContact(ctx context.Context, id, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return memberdomain.ErrNotFound
	}
	m.Name = name
	m.Email = email
	return nil
}

func (r *MemberRepository) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return memberdomain.ErrNotFound
	}
	m.Status = status
	return nil
}

func (r *MemberRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return memberdomain.ErrNotFound
	}
	m.IsAdmin = isAdmin
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return memberdomain.ErrNotFound
	}
	delete(r.byPhone, m.Phone)
	delete(r.members, id)
	for token, memberID := range r.sessions {
		if memberID == id {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *MemberRepository) AddPushToken(ctx context.Context, token *memberdomain.PushToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[token.MemberID]
	if !ok {
		return memberdomain.ErrNotFound
	}
	for _, existing := range m.PushTokens {
		if existing.Token == token.Token {
			return nil
		}
	}
	m.PushTokens = append(m.PushTokens, *token)
	return nil
}

func (r *MemberRepository) AddSession(ctx context.Context, session *memberdomain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[session.MemberID]; !ok {
		return memberdomain.ErrNotFound
	}
	r.sessions[session.Token] = session.MemberID
	return nil
}

func (r *MemberRepository) DeleteSession(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}
