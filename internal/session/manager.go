package session

import (
	"context"
	"time"

	"github.com/aquariusmike/myauthprouction/internal/auth"
	"github.com/aquariusmike/myauthprouction/internal/auth/policy"
	"github.com/aquariusmike/myauthprouction/internal/logger"
)

// DefaultTTL is the rolling session lifetime when none is configured.
const DefaultTTL = 14 * 24 * time.Hour

// Manager owns the session lifecycle: admission on login, rolling
// renewal on every authenticated request, destruction on logout.
type Manager struct {
	store  Store
	policy *policy.Policy
	ttl    time.Duration

	now func() time.Time // swapped in tests
}

// NewManager wires a manager over a store and an authorization policy.
// ttl <= 0 falls back to DefaultTTL.
func NewManager(store Store, pol *policy.Policy, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		policy: pol,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured rolling lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// CompleteLogin authorizes a verified identity and, if admitted,
// persists a fresh session. The store write is acknowledged before the
// record is returned, so a returned session ID is always redeemable.
// Rejected identities never touch the store.
func (m *Manager) CompleteLogin(ctx context.Context, identity *auth.Identity) (*Record, error) {
	decision := m.policy.Authorize(identity)
	if !decision.Authorized {
		email := ""
		if identity != nil {
			email = identity.Email
		}
		logger.Info("login rejected", map[string]any{
			"email":  email,
			"reason": decision.Reason,
		})
		return nil, &auth.AuthorizationError{Reason: decision.Reason}
	}

	sessionID, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := m.now()
	rec := Record{
		SessionID: sessionID,
		User: User{
			Email: identity.Email,
			Name:  identity.DisplayName,
			Role:  decision.Role,
		},
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(m.ttl),
	}

	if err := m.store.Set(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info("session created", map[string]any{
		"session_id": sessionID,
		"email":      rec.User.Email,
		"role":       string(rec.User.Role),
	})

	return &rec, nil
}

// Authenticate resolves a session ID to its record and slides the
// expiry forward. It returns (nil, nil) when the session is absent or
// expired; a non-nil error always means the store itself failed.
func (m *Manager) Authenticate(ctx context.Context, sessionID string) (*Record, error) {
	if sessionID == "" {
		return nil, nil
	}

	rec, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	// Absent and expired look identical to callers. The stores enforce
	// expiry themselves (key TTL, sweeper); a failed lookup must not
	// write anything.
	now := m.now()
	if rec.Expired(now) {
		return nil, nil
	}

	rec.LastActivityAt = now
	rec.ExpiresAt = now.Add(m.ttl)

	// The request is already authenticated; a failed refresh only
	// means the expiry did not slide this time.
	if err := m.store.Set(ctx, *rec); err != nil {
		logger.Warn("session refresh failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return rec, nil
}

// Logout destroys the session. Unknown and already-deleted IDs
// succeed, so repeated logouts are harmless.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}

	logger.Info("session destroyed", map[string]any{
		"session_id": sessionID,
	})

	return nil
}
