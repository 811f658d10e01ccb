package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aquariusmike/myauthprouction/internal/utils"
)

const (
	stateCookieName = "__oauth_state"

	// flowTTL bounds one trip to the provider and back.
	flowTTL = 5 * time.Minute
)

func generateState(c *gin.Context, secure bool) string {
	state := utils.RandomString(32)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(flowTTL.Seconds()),
	})

	return state
}

func validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return false
	}

	cookie, err := c.Request.Cookie(stateCookieName)
	if err != nil {
		return false
	}

	return cookie.Value == stateQuery
}
