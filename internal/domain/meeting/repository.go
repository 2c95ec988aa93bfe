package meeting

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m *Meeting) error
	GetByID(ctx context.Context, id string) (*Meeting, error)
	List(ctx context.Context) ([]Meeting, error)
	// ListUnnotifiedBetween returns meetings starting in [from, to)
	// whose 24h reminder has not yet been claimed.
	ListUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]Meeting, error)
	// ClaimReminder atomically sets the 24h flag and reports whether
	// this caller won the claim. A second claim for the same meeting
	// returns false.
	ClaimReminder(ctx context.Context, id string) (bool, error)
}
