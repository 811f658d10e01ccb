package auth

// Identity represents a verified external identity returned by the
// OAuth provider. It contains facts only, no decisions, and is never
// persisted outside the session it ends up in.
type Identity struct {
	Email       string // verified email returned by the provider
	DisplayName string // human-readable name, may be empty
}
