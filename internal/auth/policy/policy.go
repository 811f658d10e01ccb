package policy

import (
	"strings"

	"github.com/aquariusmike/myauthprouction/internal/auth"
)

// Role classifies an account for presentation purposes.
type Role string

const (
	RoleStudent Role = "student"
	RoleGeneral Role = "general"
)

// ReasonNotStudent is the rejection reason shown to users whose email
// is neither on the student domain nor explicitly allow-listed.
const ReasonNotStudent = "not a verified student"

// Decision is the outcome of authorizing one identity.
type Decision struct {
	Authorized bool
	Role       Role
	Reason     string // set only when Authorized is false
}

// Policy decides which verified identities may hold a portal session.
// Matching is exact and case-sensitive: nothing is lowercased or
// trimmed before comparison.
type Policy struct {
	studentSuffix string
	allowedEmail  string
}

// New builds a policy admitting addresses under studentDomain plus the
// single allowedEmail. allowedEmail may be empty to disable that entry.
func New(studentDomain, allowedEmail string) *Policy {
	return &Policy{
		studentSuffix: "@" + studentDomain,
		allowedEmail:  allowedEmail,
	}
}

// Authorize classifies the identity. It is pure: no I/O, no logging,
// identical inputs always produce identical decisions.
//
// Every admitted account gets the student role. The general role only
// appears on rejected decisions; no current rule admits one, so it is
// a label, not an access tier.
func (p *Policy) Authorize(identity *auth.Identity) Decision {
	if identity == nil || identity.Email == "" {
		return Decision{Role: RoleGeneral, Reason: ReasonNotStudent}
	}

	if strings.HasSuffix(identity.Email, p.studentSuffix) {
		return Decision{Authorized: true, Role: RoleStudent}
	}

	if p.allowedEmail != "" && identity.Email == p.allowedEmail {
		return Decision{Authorized: true, Role: RoleStudent}
	}

	return Decision{Role: RoleGeneral, Reason: ReasonNotStudent}
}
