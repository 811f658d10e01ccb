package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aquariusmike/myauthprouction/internal/auth/policy"
)

func testRecord(id string, expiresAt time.Time) Record {
	now := time.Now()
	return Record{
		SessionID: id,
		User: User{
			Email: "a@stu.pathfinder-mm.org",
			Name:  "Aye Chan",
			Role:  policy.RoleStudent,
		},
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}
}

func TestRecord_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	rec := testRecord("s1", now)

	assert.False(t, rec.Expired(now))
	assert.False(t, rec.Expired(now.Add(-time.Second)))
	assert.True(t, rec.Expired(now.Add(time.Second)))
}

func TestStoreError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := &StoreError{Op: "get", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "get")
	assert.Contains(t, err.Error(), "connection refused")
}
