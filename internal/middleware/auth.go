package middleware

import (
	"context"
	"net/http"

	"github.com/aquariusmike/myauthprouction/internal/logger"
	"github.com/aquariusmike/myauthprouction/internal/session"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (session.User, bool) {
	u, ok := ctx.Value(userKey).(session.User)
	return u, ok
}

type AuthMiddleware struct {
	Sessions     *session.Manager
	CookieSecret string
	Cookie       session.CookieOptions

	// EntryPath receives unauthenticated visitors. The guard protects
	// pages, not an API, so the answer to "who are you" is a redirect.
	EntryPath string
}

func NewAuthMiddleware(
	sessions *session.Manager,
	cookieSecret string,
	cookie session.CookieOptions,
) *AuthMiddleware {
	return &AuthMiddleware{
		Sessions:     sessions,
		CookieSecret: cookieSecret,
		Cookie:       cookie,
		EntryPath:    "/",
	}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read and verify the session cookie
		sessionID := session.ReadCookie(r, a.CookieSecret)
		if sessionID == "" {
			http.Redirect(w, r, a.EntryPath, http.StatusFound)
			return
		}

		// 2. Load and refresh the session. A store outage must not
		// masquerade as "not logged in", so it gets a 503 instead of
		// the entry redirect.
		rec, err := a.Sessions.Authenticate(r.Context(), sessionID)
		if err != nil {
			logger.Error("session lookup failed", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			w.Header().Set("Retry-After", "1")
			http.Error(w, "session store unavailable, retry shortly", http.StatusServiceUnavailable)
			return
		}
		if rec == nil {
			http.Redirect(w, r, a.EntryPath, http.StatusFound)
			return
		}

		// 3. Slide the cookie expiry along with the record
		session.SetCookie(w, a.CookieSecret, rec.SessionID, rec.ExpiresAt, a.Cookie)

		// 4. Attach the user to context
		ctx := context.WithValue(r.Context(), userKey, rec.User)

		// 5. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
