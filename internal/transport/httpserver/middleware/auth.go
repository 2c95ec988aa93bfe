package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	memberdomain "club-app-go/internal/domain/member"
)

// SessionResolver turns a bearer token into an approved member.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*memberdomain.Member, error)
}

type contextKey int

const memberKey contextKey = iota

type Auth struct {
	sessions    SessionResolver
	adminPIN    string
	sweepSecret string
}

func NewAuth(sessions SessionResolver, adminPIN, sweepSecret string) *Auth {
	return &Auth{
		sessions:    sessions,
		adminPIN:    adminPIN,
		sweepSecret: sweepSecret,
	}
}

// Session requires a valid member session and puts the member in the
// request context.
func (a *Auth) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := a.resolve(r)
		if !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), m)))
	})
}

// AdminPIN requires the shared admin PIN, presented in the X-Admin-Pin
// header or the pin query parameter.
func (a *Auth) AdminPIN(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.pinMatches(r) {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionOrPIN accepts either a valid member session or the admin PIN.
func (a *Auth) SessionOrPIN(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.pinMatches(r) {
			next.ServeHTTP(w, r)
			return
		}
		m, ok := a.resolve(r)
		if !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), m)))
	})
}

// SweepSecret gates the reminder sweep behind its own shared secret,
// distinct from the admin PIN.
func (a *Auth) SweepSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		presented := r.Header.Get("X-Sweep-Secret")
		if presented == "" {
			presented = r.URL.Query().Get("secret")
		}
		if a.sweepSecret == "" || !constantTimeEqual(presented, a.sweepSecret) {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) resolve(r *http.Request) (*memberdomain.Member, bool) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, false
	}
	m, err := a.sessions.ResolveSession(r.Context(), token)
	if err != nil {
		return nil, false
	}
	return m, true
}

func (a *Auth) pinMatches(r *http.Request) bool {
	presented := r.Header.Get("X-Admin-Pin")
	if presented == "" {
		presented = r.URL.Query().Get("pin")
	}
	return a.adminPIN != "" && constantTimeEqual(presented, a.adminPIN)
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func WithMember(ctx context.Context, m *memberdomain.Member) context.Context {
	return context.WithValue(ctx, memberKey, m)
}

func MemberFromContext(ctx context.Context) (*memberdomain.Member, bool) {
	m, ok := ctx.Value(memberKey).(*memberdomain.Member)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    "unauthorized",
			"message": "missing or invalid credentials",
		},
	})
}
