package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/internal/repository/inmemory"
	"club-app-go/pkg/logger"
)

type fakeSMS struct {
	enabled bool
	fail    bool
	sent    []string
}

func (s *fakeSMS) Enabled() bool { return s.enabled }

func (s *fakeSMS) Send(ctx context.Context, to, body string) error {
	if s.fail {
		return fmt.Errorf("provider down")
	}
	s.sent = append(s.sent, to+": "+body)
	return nil
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

func setupAuth(t *testing.T, sms *fakeSMS) (*Service, *memberdomain.Service) {
	t.Helper()
	members := memberdomain.NewService(inmemory.NewMemberRepository())
	svc := NewService(members, inmemory.NewOTPStore(), sms, Config{
		AdminPIN:     "1234",
		CodeTTL:      10 * time.Minute,
		EchoFallback: true,
	}, testLogger())
	return svc, members
}

func registerApproved(t *testing.T, members *memberdomain.Service, phone string) *memberdomain.Member {
	t.Helper()
	m, err := members.RegisterOrTouch(context.Background(), memberdomain.RegisterInput{Phone: phone})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := members.SetStatus(context.Background(), m.ID, memberdomain.StatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return m
}

func TestRequestCodeUnknownPhone(t *testing.T) {
	svc, _ := setupAuth(t, &fakeSMS{})

	if _, err := svc.RequestCode(context.Background(), "5551234567"); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestRequestCodePendingMember(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})

	if _, err := members.RegisterOrTouch(context.Background(), memberdomain.RegisterInput{Phone: "5551234567"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.RequestCode(context.Background(), "5551234567")
	var notApproved *NotApprovedError
	if !errors.As(err, &notApproved) {
		t.Fatalf("expected NotApprovedError, got %v", err)
	}
	if notApproved.Status != memberdomain.StatusPending {
		t.Fatalf("expected pending status in error, got %s", notApproved.Status)
	}
}

func TestRequestCodeDeliversViaSMS(t *testing.T) {
	sms := &fakeSMS{enabled: true}
	svc, members := setupAuth(t, sms)
	registerApproved(t, members, "5551234567")

	result, err := svc.RequestCode(context.Background(), "5551234567")
	if err != nil {
		t.Fatalf("request code failed: %v", err)
	}
	if !result.Sent {
		t.Fatal("expected sent=true")
	}
	if result.Code != "" {
		t.Fatal("code must not be echoed when sms delivery succeeds")
	}
	if len(sms.sent) != 1 {
		t.Fatalf("expected 1 sms, got %d", len(sms.sent))
	}
}

func TestRequestCodeEchoFallbackOnFailure(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{enabled: true, fail: true})
	registerApproved(t, members, "5551234567")

	result, err := svc.RequestCode(context.Background(), "5551234567")
	if err != nil {
		t.Fatalf("request code failed: %v", err)
	}
	if result.Sent {
		t.Fatal("expected sent=false when delivery fails")
	}
	if len(result.Code) != 6 {
		t.Fatalf("expected 6-digit echoed code, got %q", result.Code)
	}
}

func TestVerifyCodeRoundTrip(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	registerApproved(t, members, "5551234567")
	ctx := context.Background()

	result, err := svc.RequestCode(ctx, "5551234567")
	if err != nil {
		t.Fatalf("request code failed: %v", err)
	}

	token, m, err := svc.VerifyCode(ctx, "5551234567", result.Code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if m.Phone != "+15551234567" {
		t.Fatalf("unexpected member: %+v", m)
	}

	// Codes are single-use.
	if _, _, err := svc.VerifyCode(ctx, "5551234567", result.Code); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials on reuse, got %v", err)
	}
}

func TestVerifyCodeWrongCode(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	registerApproved(t, members, "5551234567")
	ctx := context.Background()

	if _, err := svc.RequestCode(ctx, "5551234567"); err != nil {
		t.Fatalf("request code failed: %v", err)
	}
	if _, _, err := svc.VerifyCode(ctx, "5551234567", "000000"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestVerifyCodeExpires(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	registerApproved(t, members, "5551234567")
	ctx := context.Background()

	now := time.Now()
	svc.WithClock(func() time.Time { return now })

	result, err := svc.RequestCode(ctx, "5551234567")
	if err != nil {
		t.Fatalf("request code failed: %v", err)
	}

	svc.WithClock(func() time.Time { return now.Add(10*time.Minute + time.Second) })
	if _, _, err := svc.VerifyCode(ctx, "5551234567", result.Code); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected expired code to be rejected, got %v", err)
	}
}

func TestRequestCodeOverwritesPriorCode(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	registerApproved(t, members, "5551234567")
	ctx := context.Background()

	first, err := svc.RequestCode(ctx, "5551234567")
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	second, err := svc.RequestCode(ctx, "5551234567")
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	if first.Code != second.Code {
		if _, _, err := svc.VerifyCode(ctx, "5551234567", first.Code); !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("expected overwritten code to be rejected, got %v", err)
		}
	}
	if _, _, err := svc.VerifyCode(ctx, "5551234567", second.Code); err != nil {
		t.Fatalf("latest code must verify: %v", err)
	}
}

func TestResolveSessionAndLogout(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	registerApproved(t, members, "5551234567")
	ctx := context.Background()

	result, _ := svc.RequestCode(ctx, "5551234567")
	token, _, err := svc.VerifyCode(ctx, "5551234567", result.Code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	m, err := svc.ResolveSession(ctx, token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if m.Phone != "+15551234567" {
		t.Fatalf("unexpected member: %+v", m)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, token); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected dead token after logout, got %v", err)
	}

	// Logout is idempotent.
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
}

func TestDemotionInvalidatesOutstandingTokens(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	m := registerApproved(t, members, "5551234567")
	ctx := context.Background()

	result, _ := svc.RequestCode(ctx, "5551234567")
	token, _, err := svc.VerifyCode(ctx, "5551234567", result.Code)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if err := members.SetStatus(ctx, m.ID, memberdomain.StatusRejected); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, token); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected token to stop working after demotion, got %v", err)
	}
}

func TestAdminLogin(t *testing.T) {
	svc, members := setupAuth(t, &fakeSMS{})
	m := registerApproved(t, members, "5551234567")
	ctx := context.Background()

	if _, _, err := svc.AdminLogin(ctx, "5551234567", "0000"); !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("expected ErrPINMismatch, got %v", err)
	}
	if _, _, err := svc.AdminLogin(ctx, "5551234567", "1234"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	if err := members.SetAdmin(ctx, m.ID, true); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	token, got, err := svc.AdminLogin(ctx, "5551234567", "1234")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if token == "" || got.ID != m.ID {
		t.Fatalf("unexpected admin login result: token=%q member=%+v", token, got)
	}
}

func TestCheckPINRejectsWhenUnconfigured(t *testing.T) {
	members := memberdomain.NewService(inmemory.NewMemberRepository())
	svc := NewService(members, inmemory.NewOTPStore(), nil, Config{}, testLogger())

	if svc.CheckPIN("") {
		t.Fatal("empty configured pin must never match")
	}
}
