package session

import (
	"context"
	"time"

	"github.com/aquariusmike/myauthprouction/internal/auth/policy"
)

// User is the identity snapshot carried inside a session record. It is
// the only place the service keeps who someone is; delete the session
// and the identity is gone with it.
type User struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  policy.Role `json:"role"`
}

// Record represents one server-side session.
type Record struct {
	SessionID      string    `json:"session_id"`
	User           User      `json:"user"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the record's expiry has passed at now.
func (r Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Store defines how session records are stored and retrieved.
//
// Get returns (nil, nil) when no record exists under sessionID. A
// non-nil error always means the backend itself failed, so callers can
// tell "not logged in" apart from "store down".
//
// Set creates or replaces the record under its session ID. Delete is
// idempotent: deleting an unknown ID succeeds.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Record, error)
	Set(ctx context.Context, rec Record) error
	Delete(ctx context.Context, sessionID string) error
}

// StoreError reports a backend failure. Op names the store operation
// that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "session store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
