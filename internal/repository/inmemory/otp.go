package inmemory

import (
	"sync"
	"time"
)

// OTPStore is the process-lifetime registry of live one-time codes.
// Entries are keyed by normalized phone; Put overwrites, so at most one
// code is live per phone.
type OTPStore struct {
	mu    sync.RWMutex
	items map[string]otpItem
}

type otpItem struct {
	code      string
	expiresAt time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{items: make(map[string]otpItem)}
}

func (s *OTPStore) Put(phone, code string, expiresAt time.Time) {
	s.mu.Lock()
	s.items[phone] = otpItem{code: code, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *OTPStore) Get(phone string) (string, time.Time, bool) {
	now := time.Now()

	s.mu.RLock()
	item, ok := s.items[phone]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, false
	}

	if !item.expiresAt.After(now) {
		s.mu.Lock()
		item, ok = s.items[phone]
		if ok && !item.expiresAt.After(now) {
			delete(s.items, phone)
		}
		s.mu.Unlock()
		return "", time.Time{}, false
	}

	return item.code, item.expiresAt, true
}

func (s *OTPStore) Delete(phone string) {
	s.mu.Lock()
	delete(s.items, phone)
	s.mu.Unlock()
}
