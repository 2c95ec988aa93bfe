package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	meetingdomain "club-app-go/internal/domain/meeting"
)

type MeetingRepository struct {
	mu       sync.Mutex
	meetings map[string]*meetingdomain.Meeting
}

func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{meetings: make(map[string]*meetingdomain.Meeting)}
}

func (r *MeetingRepository) Create(ctx context.Context, m *meetingdomain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *m
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}
	r.meetings[m.ID] = &copied
	return nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*meetingdomain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, meetingdomain.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *MeetingRepository) List(ctx context.Context) ([]meetingdomain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]meetingdomain.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartsAt.Before(result[j].StartsAt)
	})
	return result, nil
}

func (r *MeetingRepository) ListUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]meetingdomain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []meetingdomain.Meeting
	for _, m := range r.meetings {
		if m.DidNotify24h {
			continue
		}
		if m.StartsAt.Before(from) || !m.StartsAt.Before(to) {
			continue
		}
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartsAt.Before(result[j].StartsAt)
	})
	return result, nil
}

func (r *MeetingRepository) ClaimReminder(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return false, meetingdomain.ErrNotFound
	}
	if m.DidNotify24h {
		return false, nil
	}
	m.DidNotify24h = true
	return true, nil
}
