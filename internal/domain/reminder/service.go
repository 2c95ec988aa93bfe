package reminder

import (
	"context"
	"time"

	meetingdomain "club-app-go/internal/domain/meeting"
	"club-app-go/internal/domain/notify"
	"club-app-go/internal/metrics"
	"club-app-go/pkg/logger"
)

const (
	DefaultLead      = 24 * time.Hour
	DefaultTolerance = 10 * time.Minute
)

// MeetingSource is the slice of the meeting repository the sweep needs.
type MeetingSource interface {
	ListUnnotifiedBetween(ctx context.Context, from, to time.Time) ([]meetingdomain.Meeting, error)
	ClaimReminder(ctx context.Context, id string) (bool, error)
}

type Broadcaster interface {
	Broadcast(ctx context.Context, m meetingdomain.Meeting, opts notify.Options) notify.Result
}

type Config struct {
	// Lead is how far before a meeting's start the reminder fires.
	Lead time.Duration
	// Tolerance widens the sweep window on both sides so irregular
	// trigger intervals cannot skip over a meeting. The claim flag, not
	// the window, is what prevents duplicates.
	Tolerance time.Duration
}

type Service struct {
	meetings    MeetingSource
	broadcaster Broadcaster
	cfg         Config
	log         logger.Logger
}

func NewService(meetings MeetingSource, broadcaster Broadcaster, cfg Config, log logger.Logger) *Service {
	if cfg.Lead <= 0 {
		cfg.Lead = DefaultLead
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	return &Service{meetings: meetings, broadcaster: broadcaster, cfg: cfg, log: log}
}

type Result struct {
	MeetingIDs []string `json:"meetings_notified"`
	SMSCount   int      `json:"sms_count"`
	PushCount  int      `json:"push_count"`
}

// Sweep scans for meetings entering the reminder window and notifies
// each at most once. The claim is taken before delivery, so overlapping
// sweeps cannot double-send; if delivery then fails wholesale the claim
// stands and the miss is logged rather than retried.
func (s *Service) Sweep(ctx context.Context, now time.Time) (Result, error) {
	metrics.SweepRuns.Inc()

	from := now.Add(s.cfg.Lead - s.cfg.Tolerance)
	to := now.Add(s.cfg.Lead + s.cfg.Tolerance)

	due, err := s.meetings.ListUnnotifiedBetween(ctx, from, to)
	if err != nil {
		return Result{}, err
	}

	result := Result{MeetingIDs: []string{}}
	for _, m := range due {
		claimed, err := s.meetings.ClaimReminder(ctx, m.ID)
		if err != nil {
			s.log.InternalError("reminder.sweep: claim failed", err, "meeting_id", m.ID)
			continue
		}
		if !claimed {
			// Another sweep got here first.
			continue
		}

		r := s.broadcaster.Broadcast(ctx, m, notify.Options{SendSMS: true, SendPush: true})
		metrics.MeetingsNotified.Inc()

		result.MeetingIDs = append(result.MeetingIDs, m.ID)
		result.SMSCount += r.SMSAttempted
		result.PushCount += r.PushAttempted
	}

	s.log.Info("reminder.sweep: done",
		"eligible", len(due),
		"notified", len(result.MeetingIDs),
		"sms_count", result.SMSCount,
		"push_count", result.PushCount,
	)
	return result, nil
}
