package notify

import (
	"context"

	memberdomain "club-app-go/internal/domain/member"
	meetingdomain "club-app-go/internal/domain/meeting"
	"club-app-go/internal/metrics"
	"club-app-go/pkg/logger"
)

// MemberSource supplies the approved-member snapshot at broadcast time.
type MemberSource interface {
	ListApproved(ctx context.Context) ([]memberdomain.Member, error)
}

type Options struct {
	SendSMS  bool
	SendPush bool
}

type Result struct {
	SMSAttempted  int
	PushAttempted int
}

type Service struct {
	members MemberSource
	sms     SMSChannel
	push    PushChannel
	log     logger.Logger
}

func NewService(members MemberSource, sms SMSChannel, push PushChannel, log logger.Logger) *Service {
	return &Service{members: members, sms: sms, push: push, log: log}
}

// Broadcast attempts delivery of one announcement to every approved
// member. Best effort throughout: a recipient or chunk failure is
// logged, counted, and never aborts the rest, and the caller never
// sees a delivery error.
func (s *Service) Broadcast(ctx context.Context, m meetingdomain.Meeting, opts Options) Result {
	ann := ComposeAnnouncement(m)

	members, err := s.members.ListApproved(ctx)
	if err != nil {
		s.log.InternalError("notify.broadcast: listing approved members failed", err, "meeting_id", m.ID)
		return Result{}
	}

	var result Result
	if opts.SendSMS {
		result.SMSAttempted = s.broadcastSMS(ctx, m.ID, ann, members)
	}
	if opts.SendPush {
		result.PushAttempted = s.broadcastPush(ctx, m.ID, ann, members)
	}

	s.log.Info("notify.broadcast: done",
		"meeting_id", m.ID,
		"members", len(members),
		"sms_attempted", result.SMSAttempted,
		"push_attempted", result.PushAttempted,
	)
	return result
}

// Announce adapts Broadcast for the meeting service's fire-and-forget
// contract.
func (s *Service) Announce(ctx context.Context, m meetingdomain.Meeting, sendSMS, sendPush bool) {
	s.Broadcast(ctx, m, Options{SendSMS: sendSMS, SendPush: sendPush})
}

func (s *Service) broadcastSMS(ctx context.Context, meetingID string, ann Announcement, members []memberdomain.Member) int {
	if s.sms == nil || !s.sms.Enabled() {
		return 0
	}

	attempted := 0
	for _, m := range members {
		attempted++
		metrics.SMSAttempts.Inc()
		if err := s.sms.Send(ctx, m.Phone, ann.SMSBody); err != nil {
			metrics.SMSFailures.Inc()
			s.log.BusinessError("notify.broadcast: sms send failed", err, "meeting_id", meetingID, "phone", m.Phone)
		}
	}
	return attempted
}

func (s *Service) broadcastPush(ctx context.Context, meetingID string, ann Announcement, members []memberdomain.Member) int {
	if s.push == nil || !s.push.Enabled() {
		return 0
	}

	var messages []PushMessage
	for _, m := range members {
		for _, t := range m.PushTokens {
			if !s.push.IsValidToken(t.Token) {
				s.log.Debug("notify.broadcast: skipping invalid push token", "member_id", m.ID)
				continue
			}
			messages = append(messages, PushMessage{
				To:    t.Token,
				Title: ann.PushTitle,
				Body:  ann.PushBody,
				Sound: "default",
			})
		}
	}
	if len(messages) == 0 {
		return 0
	}

	attempted := 0
	for _, chunk := range s.push.Chunk(messages) {
		attempted += len(chunk)
		metrics.PushAttempts.Add(float64(len(chunk)))
		if err := s.push.SendChunk(ctx, chunk); err != nil {
			metrics.PushFailures.Add(float64(len(chunk)))
			s.log.BusinessError("notify.broadcast: push chunk failed", err, "meeting_id", meetingID, "chunk_size", len(chunk))
		}
	}
	return attempted
}
