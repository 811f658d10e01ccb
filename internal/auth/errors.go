package auth

// VerificationError wraps any failure between receiving the callback
// and holding a verified identity: code exchange, missing id_token,
// signature verification, claim extraction. Callers treat all of these
// the same way, so the cause is kept only for logs.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return "identity verification failed: " + e.Err.Error()
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// AuthorizationError means the identity was verified but the account
// is not allowed to use the portal. Reason is safe to show to the user.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "authorization rejected: " + e.Reason
}
