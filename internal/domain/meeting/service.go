package meeting

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Notifier fans an announcement out to approved members. Fire and
// forget: the meeting is already persisted when it runs, and its
// failures never surface to the creating request.
type Notifier interface {
	Announce(ctx context.Context, m Meeting, sendSMS, sendPush bool)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type CreateInput struct {
	Title           string
	Description     string
	Location        string
	StartsAt        string // RFC 3339
	ReminderMinutes int
	SendSMS         bool
	SendPush        bool
}

// Create persists the meeting first, then triggers the announcement
// fan-out. Persist-before-notify is the ordering guarantee the rest of
// the system relies on.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	startsAt, err := parseStartsAt(input.StartsAt)
	if err != nil {
		return nil, err
	}

	reminderMinutes := input.ReminderMinutes
	if reminderMinutes <= 0 {
		reminderMinutes = DefaultReminderMinutes
	}

	m := Meeting{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		Location:        strings.TrimSpace(input.Location),
		StartsAt:        startsAt,
		ReminderMinutes: reminderMinutes,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}

	if s.notifier != nil && (input.SendSMS || input.SendPush) {
		s.notifier.Announce(ctx, m, input.SendSMS, input.SendPush)
	}

	return &m, nil
}

func (s *Service) List(ctx context.Context) ([]Meeting, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Meeting, error) {
	return s.repo.GetByID(ctx, id)
}
