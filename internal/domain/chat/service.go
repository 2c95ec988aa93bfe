package chat

import (
	"context"
	"strings"

	memberdomain "club-app-go/internal/domain/member"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Post(ctx context.Context, author *memberdomain.Member, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	name := author.Name
	if name == "" {
		name = author.Phone
	}

	message := Message{
		ID:         uuid.NewString(),
		MemberID:   author.ID,
		MemberName: name,
		Body:       body,
	}
	if err := s.repo.Create(ctx, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
