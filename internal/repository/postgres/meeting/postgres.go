package meeting

import (
	"context"
	"errors"
	"time"

	meetingdomain "club-app-go/internal/domain/meeting"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *meetingdomain.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*meetingdomain.Meeting, error) {
	var m meetingdomain.Meeting
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, meetingdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]meetingdomain.Meeting, error) {
	var meetings []meetingdomain.Meeting
	if err := r.db.WithContext(ctx).Order("starts_at asc").Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *PostgresRepository) ListUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]meetingdomain.Meeting, error) {
	var meetings []meetingdomain.Meeting
	err := r.db.WithContext(ctx).
		Where("did_notify_24h = ?", false).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at asc").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// ClaimReminder is a conditional update; RowsAffected tells us whether
// this caller flipped the flag or lost the race.
func (r *PostgresRepository) ClaimReminder(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&meetingdomain.Meeting{}).
		Where("id = ? AND did_notify_24h = ?", id, false).
		Update("did_notify_24h", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
