package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/aquariusmike/myauthprouction/internal/auth"
	"github.com/aquariusmike/myauthprouction/internal/auth/provider"
	"github.com/aquariusmike/myauthprouction/internal/logger"
	"github.com/aquariusmike/myauthprouction/internal/middleware"
	"github.com/aquariusmike/myauthprouction/internal/session"

	"github.com/gin-gonic/gin"
)

// Route paths, shared with the app wiring.
const (
	PathEntry         = "/"
	PathLoginStart    = "/login-start"
	PathLoginCallback = "/login-callback"
	PathLoginFailure  = "/login-failure"
	PathSessionInfo   = "/session-info"
	PathDashboard     = "/dashboard"
	PathLogout        = "/logout"
)

// User-facing failure reasons. Anything the user cannot act on
// collapses into one of these.
const (
	failureReasonLogin     = "Login failed"
	failureReasonTransient = "Temporary server error, please try again"
)

type Handler struct {
	verifier     provider.Verifier
	sessions     *session.Manager
	cookieSecret string
	cookie       session.CookieOptions
}

func NewHandler(
	verifier provider.Verifier,
	sessions *session.Manager,
	cookieSecret string,
	cookie session.CookieOptions,
) *Handler {
	return &Handler{
		verifier:     verifier,
		sessions:     sessions,
		cookieSecret: cookieSecret,
		cookie:       cookie,
	}
}

// RegisterRoutes mounts the public auth routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET(PathLoginStart, h.loginStart)
	r.GET(PathLoginCallback, h.loginCallback)
	r.GET(PathLoginFailure, h.loginFailure)
	r.GET(PathLogout, h.logout)
}

// RegisterProtected mounts the routes that sit behind the auth guard.
func (h *Handler) RegisterProtected(g *gin.RouterGroup) {
	g.GET(PathSessionInfo, h.sessionInfo)
	g.GET(PathDashboard, h.dashboard)
}

func (h *Handler) loginStart(c *gin.Context) {
	state := generateState(c, h.cookie.Secure)
	_, codeChallenge := generatePKCE(c, h.cookie.Secure)

	c.Redirect(http.StatusFound, h.verifier.AuthCodeURL(state, codeChallenge))
}

func (h *Handler) loginCallback(c *gin.Context) {
	// Provider-reported errors (user cancelled, consent denied, ...)
	// all land on the same failure page.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("provider callback returned error", map[string]any{
			"error": errParam,
			"desc":  c.Query("error_description"),
		})
		h.redirectFailure(c, failureReasonLogin)
		return
	}

	if !validateState(c) {
		logger.Warn("callback state mismatch", map[string]any{
			"ip": c.ClientIP(),
		})
		h.redirectFailure(c, failureReasonLogin)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("callback missing code and error", nil)
		h.redirectFailure(c, failureReasonLogin)
		return
	}

	// The flow cookies are one-shot: consumed here, gone either way.
	codeVerifier := getPKCEVerifier(c)
	clearFlowCookies(c, h.cookie.Secure)
	if codeVerifier == "" {
		h.redirectFailure(c, failureReasonLogin)
		return
	}

	identity, err := h.verifier.Exchange(c.Request.Context(), code, codeVerifier)
	if err != nil {
		logger.Warn("identity verification failed", map[string]any{
			"error": err.Error(),
		})
		h.redirectFailure(c, failureReasonLogin)
		return
	}

	rec, err := h.sessions.CompleteLogin(c.Request.Context(), identity)
	if err != nil {
		var authzErr *auth.AuthorizationError
		if errors.As(err, &authzErr) {
			h.redirectFailure(c, authzErr.Reason)
			return
		}
		logger.Error("session creation failed", map[string]any{
			"error": err.Error(),
		})
		h.redirectFailure(c, failureReasonTransient)
		return
	}

	session.SetCookie(c.Writer, h.cookieSecret, rec.SessionID, rec.ExpiresAt, h.cookie)
	c.Redirect(http.StatusFound, PathDashboard)
}

func (h *Handler) redirectFailure(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, PathLoginFailure+"?reason="+url.QueryEscape(reason))
}

func (h *Handler) loginFailure(c *gin.Context) {
	reason := c.Query("reason")
	if reason == "" {
		reason = failureReasonLogin
	}
	c.HTML(http.StatusOK, "failure.html", gin.H{"Reason": reason})
}

func (h *Handler) logout(c *gin.Context) {
	if sessionID := session.ReadCookie(c.Request, h.cookieSecret); sessionID != "" {
		if err := h.sessions.Logout(c.Request.Context(), sessionID); err != nil {
			// The cookie is cleared regardless; the orphaned record
			// ages out through its TTL.
			logger.Warn("logout could not destroy session", map[string]any{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookie)
	c.Redirect(http.StatusFound, PathEntry)
}

func (h *Handler) sessionInfo(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		// The guard always runs first; reaching this means a wiring bug.
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
	})
}

func (h *Handler) dashboard(c *gin.Context) {
	user, ok := middleware.UserFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", user)
}
