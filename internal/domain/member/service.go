package member

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterInput struct {
	Phone     string
	Name      string
	Email     string
	PushToken string
}

// RegisterOrTouch creates a pending member for a new phone number, or
// merges optional fields into an existing one. Merging only fills fields
// that are still empty; it never overwrites. Idempotent on phone.
func (s *Service) RegisterOrTouch(ctx context.Context, input RegisterInput) (*Member, error) {
	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	pushToken := strings.TrimSpace(input.PushToken)

	var result Member
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetByPhone(ctx, phone)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		if existing == nil {
			m := Member{
				ID:     uuid.NewString(),
				Phone:  phone,
				Name:   name,
				Email:  email,
				Status: StatusPending,
			}
			if err := tx.Create(ctx, &m); err != nil {
				return err
			}
			existing = &m
		} else {
			mergedName := existing.Name
			mergedEmail := existing.Email
			if mergedName == "" {
				mergedName = name
			}
			if mergedEmail == "" {
				mergedEmail = email
			}
			if mergedName != existing.Name || mergedEmail != existing.Email {
				if err := tx.UpdateContact(ctx, existing.ID, mergedName, mergedEmail); err != nil {
					return err
				}
				existing.Name = mergedName
				existing.Email = mergedEmail
			}
		}

		if pushToken != "" && !hasPushToken(existing, pushToken) {
			entry := PushToken{MemberID: existing.ID, Token: pushToken}
			if err := tx.AddPushToken(ctx, &entry); err != nil {
				return err
			}
			existing.PushTokens = append(existing.PushTokens, entry)
		}

		result = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByPhone(ctx context.Context, rawPhone string) (*Member, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByPhone(ctx, phone)
}

func (s *Service) GetBySessionToken(ctx context.Context, token string) (*Member, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetBySessionToken(ctx, token)
}

// SetStatus moves a member through the approval lifecycle. Any of the
// three states is a legal target; re-approving a rejected member is
// allowed.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return s.repo.SetAdmin(ctx, id, isAdmin)
}

// Remove hard-deletes a member. Removing an unknown id is not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// ListByStatus returns members filtered by status, or all members when
// status is empty.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]Member, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status)
}

// ListApproved is the broadcast snapshot: every approved member with
// their push tokens.
func (s *Service) ListApproved(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx, StatusApproved)
}

func (s *Service) AddSession(ctx context.Context, memberID, token string) error {
	return s.repo.AddSession(ctx, &Session{Token: token, MemberID: memberID})
}

// RemoveSession is idempotent; deleting an unknown token is a no-op.
func (s *Service) RemoveSession(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func hasPushToken(m *Member, token string) bool {
	for _, t := range m.PushTokens {
		if t.Token == token {
			return true
		}
	}
	return false
}
