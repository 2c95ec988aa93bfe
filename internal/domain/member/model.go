package member

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Member struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Phone     string `gorm:"not null;uniqueIndex"`
	Name      string
	Email     string
	Status    string `gorm:"type:varchar(16);not null;default:pending;index"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PushTokens []PushToken `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	Sessions   []Session   `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

// PushToken is an append-only device registration; a member may hold several.
type PushToken struct {
	MemberID string    `gorm:"type:uuid;primaryKey"`
	Token    string    `gorm:"primaryKey"`
	AddedAt  time.Time `gorm:"autoCreateTime"`
}

// Session is an opaque bearer credential minted on OTP verification.
type Session struct {
	Token     string    `gorm:"primaryKey"`
	MemberID  string    `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (m *Member) Approved() bool {
	return m.Status == StatusApproved
}

// Projection is the public view of a member. Sessions and push tokens
// never leave the service through it.
type Projection struct {
	ID      string `json:"id"`
	Phone   string `json:"phone"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status"`
	IsAdmin bool   `json:"is_admin"`
}

func (m *Member) Project() Projection {
	return Projection{
		ID:      m.ID,
		Phone:   m.Phone,
		Name:    m.Name,
		Email:   m.Email,
		Status:  m.Status,
		IsAdmin: m.IsAdmin,
	}
}
