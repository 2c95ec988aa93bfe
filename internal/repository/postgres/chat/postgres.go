package chat

import (
	"context"

	chatdomain "club-app-go/internal/domain/chat"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, message *chatdomain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]chatdomain.Message, error) {
	var newest []chatdomain.Message
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&newest).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest, nil
}
