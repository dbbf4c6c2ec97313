// Package session implements opaque server-side sessions. The session record
// lives in Redis keyed by a random ID; the browser cookie carries only that
// ID, signed as a JWT. The Redis record stays authoritative: logout deletes
// it and the cookie is useless afterwards.
package session

import (
	"context"
	"time"
)

// Session holds the identity id(s) and display names for both login domains,
// plus nothing else. One browser session can hold a customer login, a manager
// login, or both.
type Session struct {
	ID            string `json:"id"`
	UserID        int64  `json:"userId,omitempty"`
	AccountID     int64  `json:"accountId,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	UserName      string `json:"userName,omitempty"`
	ManagerID     int64  `json:"managerId,omitempty"`
	ManagerName   string `json:"managerName,omitempty"`
}

func (s *Session) CustomerLoggedIn() bool { return s.UserID != 0 }

func (s *Session) ManagerLoggedIn() bool { return s.ManagerID != 0 }

// ClearIdentity logs out both domains, keeping the session ID so flash
// messages written during logout still reach the next page.
func (s *Session) ClearIdentity() {
	s.UserID = 0
	s.AccountID = 0
	s.AccountNumber = ""
	s.UserName = ""
	s.ManagerID = 0
	s.ManagerName = ""
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Manager is the session behaviour handlers and middleware depend on.
// Store is the production implementation.
type Manager interface {
	New(ctx context.Context) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Load(ctx context.Context, cookieValue string) (*Session, error)
	Destroy(ctx context.Context, sess *Session) error
	CookieValue(sess *Session) (string, error)
	Flash(ctx context.Context, sess *Session, level, message string) error
	PopFlashes(ctx context.Context, sess *Session) []Flash
	TTL() time.Duration
}
