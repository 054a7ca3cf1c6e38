package domain

import (
	"errors"
	"time"
)

var (
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrExpiredSession indicates the expired session.
	ErrExpiredSession = errors.New("expired session")
)

// Session holds one browser session for a user. The cookie carries only the
// opaque session id wrapped in a signed token; the row is looked up fresh on
// every request.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
