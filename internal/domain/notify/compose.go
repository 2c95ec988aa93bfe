package notify

import (
	"fmt"

	meetingdomain "club-app-go/internal/domain/meeting"
)

type Announcement struct {
	SMSBody   string
	PushTitle string
	PushBody  string
}

// ComposeAnnouncement renders the meeting into channel-specific text.
// Deterministic: same meeting, same output.
func ComposeAnnouncement(m meetingdomain.Meeting) Announcement {
	location := m.Location
	if location == "" {
		location = "TBA"
	}

	when := m.StartsAt.UTC().Format("Mon Jan 2 at 3:04 PM MST")

	smsBody := fmt.Sprintf("Club meeting: %s on %s, location: %s.", m.Title, when, location)
	if m.Description != "" {
		smsBody += " " + m.Description
	}

	return Announcement{
		SMSBody:   smsBody,
		PushTitle: m.Title,
		PushBody:  fmt.Sprintf("%s, location: %s", when, location),
	}
}
