package chat

import "time"

type Message struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	MemberID   string    `gorm:"type:uuid;not null;index"`
	MemberName string    `gorm:"not null"`
	Body       string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}
