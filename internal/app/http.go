package app

import (
	"context"
	"net/http"

	"github.com/aquariusmike/myauthprouction/internal/auth/handler"
	"github.com/aquariusmike/myauthprouction/internal/auth/policy"
	"github.com/aquariusmike/myauthprouction/internal/auth/provider/google"
	"github.com/aquariusmike/myauthprouction/internal/config"
	"github.com/aquariusmike/myauthprouction/internal/middleware"
	"github.com/aquariusmike/myauthprouction/internal/session"
	"github.com/aquariusmike/myauthprouction/internal/web"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	store, cleanup, err := setupStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	pol := policy.New(cfg.StudentEmailDomain, cfg.AllowedEmail)
	sessions := session.NewManager(store, pol, cfg.SessionTTL)

	verifier, err := google.New(
		ctx,
		cfg.ProviderClientID,
		cfg.ProviderClientSecret,
		cfg.CallbackBaseURL+handler.PathLoginCallback,
	)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	cookieOpts := session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	authHandler := handler.NewHandler(
		verifier,
		sessions,
		cfg.SessionSecret,
		cookieOpts,
	)

	authMiddleware := middleware.NewAuthMiddleware(
		sessions,
		cfg.SessionSecret,
		cookieOpts,
	)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.RuntimeEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())
	router.SetHTMLTemplate(web.Templates())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET(handler.PathEntry, func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected Routes
	// ----------------------------

	protected := router.Group("/")
	protected.Use(middleware.GinRequireAuth(authMiddleware))

	authHandler.RegisterProtected(protected)

	return router, cleanup, nil
}
