package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquariusmike/myauthprouction/internal/auth/policy"
	"github.com/aquariusmike/myauthprouction/internal/session"
)

func TestTemplatesParse(t *testing.T) {
	t.Parallel()

	tmpl := Templates()
	for _, name := range []string{"index.html", "dashboard.html", "failure.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestDashboardVariants(t *testing.T) {
	t.Parallel()

	tmpl := Templates()

	var student strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&student, "dashboard.html", session.User{
		Email: "a@stu.pathfinder-mm.org",
		Name:  "Aye Chan",
		Role:  policy.RoleStudent,
	}))
	assert.Contains(t, student.String(), "Aye Chan")
	assert.Contains(t, student.String(), "Student resources")

	var general strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&general, "dashboard.html", session.User{
		Email: "visitor@pathfinder-mm.org",
		Role:  policy.RoleGeneral,
	}))
	assert.NotContains(t, general.String(), "Student resources")
	assert.Contains(t, general.String(), "general access")
	assert.Contains(t, general.String(), "visitor@pathfinder-mm.org")
}

func TestFailurePageEscapesReason(t *testing.T) {
	t.Parallel()

	tmpl := Templates()

	var out strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&out, "failure.html", map[string]string{
		"Reason": "<script>alert(1)</script>",
	}))
	assert.NotContains(t, out.String(), "<script>")
	assert.Contains(t, out.String(), "&lt;script&gt;")
}
