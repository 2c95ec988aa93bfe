package meeting

import "time"

const DefaultReminderMinutes = 60

type Meeting struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Title           string `gorm:"not null"`
	Description     string
	Location        string
	StartsAt        time.Time `gorm:"not null;index"`
	ReminderMinutes int       `gorm:"not null;default:60"`
	// DidNotify24h flips to true exactly once, when the reminder sweep
	// claims the meeting. It is the duplicate-suppression invariant.
	DidNotify24h bool      `gorm:"column:did_notify_24h;not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
