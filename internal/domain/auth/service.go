package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/pkg/logger"
)

const defaultCodeTTL = 10 * time.Minute

// SMSSender delivers one-time codes out of band. A disabled sender is
// not an error; RequestCode falls back to echoing the code.
type SMSSender interface {
	Enabled() bool
	Send(ctx context.Context, to, body string) error
}

type Config struct {
	AdminPIN string
	CodeTTL  time.Duration
	// EchoFallback returns the code in the response when SMS delivery
	// is unavailable or fails. This is a test/ops escape hatch, not a
	// security feature: anyone who can call request-code sees the code.
	// Disable wherever code confidentiality matters.
	EchoFallback bool
}

type Service struct {
	members *memberdomain.Service
	otps    OTPStore
	sms     SMSSender
	cfg     Config
	now     func() time.Time
	log     logger.Logger
}

func NewService(members *memberdomain.Service, otps OTPStore, sms SMSSender, cfg Config, log logger.Logger) *Service {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = defaultCodeTTL
	}
	return &Service{
		members: members,
		otps:    otps,
		sms:     sms,
		cfg:     cfg,
		now:     time.Now,
		log:     log,
	}
}

type CodeResult struct {
	Sent bool
	// Code is only populated when Sent is false and echo fallback is on.
	Code string
}

// RequestCode issues a fresh 6-digit code for an approved member and
// attempts SMS delivery. A new request overwrites any prior unconsumed
// code for the phone.
func (s *Service) RequestCode(ctx context.Context, rawPhone string) (CodeResult, error) {
	m, err := s.members.GetByPhone(ctx, rawPhone)
	if err != nil {
		if errors.Is(err, memberdomain.ErrNotFound) {
			return CodeResult{}, ErrNotRegistered
		}
		return CodeResult{}, err
	}
	if !m.Approved() {
		return CodeResult{}, &NotApprovedError{Status: m.Status}
	}

	code, err := generateCode()
	if err != nil {
		return CodeResult{}, err
	}
	s.otps.Put(m.Phone, code, s.now().Add(s.cfg.CodeTTL))

	if s.sms != nil && s.sms.Enabled() {
		body := fmt.Sprintf("Your club login code is %s. It expires in %d minutes.", code, int(s.cfg.CodeTTL.Minutes()))
		err := s.sms.Send(ctx, m.Phone, body)
		if err == nil {
			return CodeResult{Sent: true}, nil
		}
		s.log.BusinessError("auth.request_code: sms delivery failed", err, "phone", m.Phone)
	}

	if s.cfg.EchoFallback {
		return CodeResult{Sent: false, Code: code}, nil
	}
	return CodeResult{Sent: false}, nil
}

// VerifyCode consumes a live code and mints a session token. Codes are
// single-use: the first successful verification deletes the entry.
func (s *Service) VerifyCode(ctx context.Context, rawPhone, code string) (string, *memberdomain.Member, error) {
	phone, err := memberdomain.NormalizePhone(rawPhone)
	if err != nil {
		return "", nil, ErrBadCredentials
	}

	stored, expiresAt, ok := s.otps.Get(phone)
	if !ok || code == "" || stored != code || !s.now().Before(expiresAt) {
		return "", nil, ErrBadCredentials
	}
	s.otps.Delete(phone)

	m, err := s.members.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, memberdomain.ErrNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}
	if !m.Approved() {
		return "", nil, &NotApprovedError{Status: m.Status}
	}

	token, err := generateSessionToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.members.AddSession(ctx, m.ID, token); err != nil {
		return "", nil, err
	}

	return token, m, nil
}

// ResolveSession returns the member owning the token, but only while
// that member is approved. A demoted member's outstanding tokens stop
// working without an explicit revocation event.
func (s *Service) ResolveSession(ctx context.Context, token string) (*memberdomain.Member, error) {
	m, err := s.members.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, memberdomain.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !m.Approved() {
		return nil, ErrBadCredentials
	}
	return m, nil
}

// Logout revokes a single session token. Idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.members.RemoveSession(ctx, token)
}

// CheckPIN compares the presented admin PIN in constant time.
func (s *Service) CheckPIN(pin string) bool {
	if s.cfg.AdminPIN == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(s.cfg.AdminPIN)) == 1
}

// AdminLogin is the stricter phone+PIN variant: the PIN must match and
// the member must be an approved admin. It mints a regular session.
func (s *Service) AdminLogin(ctx context.Context, rawPhone, pin string) (string, *memberdomain.Member, error) {
	if !s.CheckPIN(pin) {
		return "", nil, ErrPINMismatch
	}

	m, err := s.members.GetByPhone(ctx, rawPhone)
	if err != nil {
		if errors.Is(err, memberdomain.ErrNotFound) {
			return "", nil, ErrNotRegistered
		}
		return "", nil, err
	}
	if !m.IsAdmin {
		return "", nil, ErrNotAdmin
	}
	if !m.Approved() {
		return "", nil, &NotApprovedError{Status: m.Status}
	}

	token, err := generateSessionToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.members.AddSession(ctx, m.ID, token); err != nil {
		return "", nil, err
	}

	return token, m, nil
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
