package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquariusmike/myauthprouction/internal/auth"
)

func TestPolicy_Authorize(t *testing.T) {
	t.Parallel()

	pol := New("stu.pathfinder-mm.org", "principal@pathfinder-mm.org")

	tests := []struct {
		name       string
		identity   *auth.Identity
		authorized bool
	}{
		{
			name:       "student domain email",
			identity:   &auth.Identity{Email: "a@stu.pathfinder-mm.org"},
			authorized: true,
		},
		{
			name:       "allow-listed email",
			identity:   &auth.Identity{Email: "principal@pathfinder-mm.org"},
			authorized: true,
		},
		{
			name:     "outside email",
			identity: &auth.Identity{Email: "random@gmail.com"},
		},
		{
			name:     "parent domain is not the student domain",
			identity: &auth.Identity{Email: "staff@pathfinder-mm.org"},
		},
		{
			name:     "student domain with extra labels appended",
			identity: &auth.Identity{Email: "a@stu.pathfinder-mm.org.evil.io"},
		},
		{
			name:     "lookalike domain sharing the tail",
			identity: &auth.Identity{Email: "a@notstu.pathfinder-mm.org"},
		},
		{
			name:     "student domain not at the tail",
			identity: &auth.Identity{Email: "a@stu.pathfinder-mm.org@gmail.com"},
		},
		{
			name:     "uppercase student domain",
			identity: &auth.Identity{Email: "A@STU.PATHFINDER-MM.ORG"},
		},
		{
			name:     "allow-listed email with different case",
			identity: &auth.Identity{Email: "Principal@pathfinder-mm.org"},
		},
		{
			name:     "empty email",
			identity: &auth.Identity{},
		},
		{
			name:     "nil identity",
			identity: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := pol.Authorize(tt.identity)
			assert.Equal(t, tt.authorized, d.Authorized)

			if tt.authorized {
				assert.Equal(t, RoleStudent, d.Role)
				assert.Empty(t, d.Reason)
			} else {
				assert.Equal(t, RoleGeneral, d.Role)
				assert.Equal(t, ReasonNotStudent, d.Reason)
			}
		})
	}
}

func TestPolicy_EmptyAllowList(t *testing.T) {
	t.Parallel()

	pol := New("stu.pathfinder-mm.org", "")

	d := pol.Authorize(&auth.Identity{Email: "b@stu.pathfinder-mm.org"})
	assert.True(t, d.Authorized)

	// An empty allow list must not admit an empty email.
	d = pol.Authorize(&auth.Identity{Email: ""})
	assert.False(t, d.Authorized)
}

func TestPolicy_IsDeterministic(t *testing.T) {
	t.Parallel()

	pol := New("stu.pathfinder-mm.org", "principal@pathfinder-mm.org")
	identity := &auth.Identity{Email: "a@stu.pathfinder-mm.org"}

	first := pol.Authorize(identity)
	second := pol.Authorize(identity)
	assert.Equal(t, first, second)
}
