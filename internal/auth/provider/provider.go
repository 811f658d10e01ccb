package provider

import (
	"context"

	"github.com/aquariusmike/myauthprouction/internal/auth"
)

// Verifier defines the contract with the external identity provider.
// Implementations return identity facts only and must not make
// authorization decisions or touch session state.
type Verifier interface {
	// AuthCodeURL returns the provider authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// Exchange redeems the authorization code, verifies the returned
	// id_token, and extracts a normalized identity.
	Exchange(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}
