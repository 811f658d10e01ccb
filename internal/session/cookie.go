package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "portal_session"
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
	Domain   string // usually empty, cookie sticks to the host
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// sign computes the HMAC-SHA256 tag for a session ID.
func sign(secret, sessionID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SignValue produces the cookie payload "<id>.<tag>". The tag proves
// the ID was issued by this server, so forged cookies never reach the
// session store.
func SignValue(secret, sessionID string) string {
	return sessionID + "." + sign(secret, sessionID)
}

// VerifyValue splits and checks a cookie payload, returning the
// session ID or "" when the tag does not match.
func VerifyValue(secret, value string) string {
	id, tag, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return ""
	}
	if !hmac.Equal([]byte(tag), []byte(sign(secret, id))) {
		return ""
	}
	return id
}

// SetCookie issues the signed session cookie to the client. HttpOnly
// is always on; scripts have no business reading the session ID.
func SetCookie(
	w http.ResponseWriter,
	secret string,
	sessionID string,
	expiresAt time.Time,
	opts CookieOptions,
) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    SignValue(secret, sessionID),
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(
	w http.ResponseWriter,
	opts CookieOptions,
) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ReadCookie extracts and verifies the session ID from the request.
// Missing, malformed, and tampered cookies all come back as "".
func ReadCookie(r *http.Request, secret string) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return VerifyValue(secret, cookie.Value)
}
