package app

import (
	"github.com/aquariusmike/myauthprouction/internal/config"
	"github.com/aquariusmike/myauthprouction/internal/logger"
	"github.com/aquariusmike/myauthprouction/internal/redis"
	"github.com/aquariusmike/myauthprouction/internal/session"
)

// setupStore picks the session backend from configuration. No store
// URL means the in-process fallback, which is fine for a single
// instance but forgets everything on restart.
func setupStore(cfg config.Config) (session.Store, func() error, error) {
	if cfg.SessionStoreURL == "" {
		store := session.NewMemoryStore()

		logger.Info("session store ready", map[string]any{
			"backend": "memory",
		})

		return store, store.Close, nil
	}

	client, err := redis.New(cfg.SessionStoreURL)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("session store ready", map[string]any{
		"backend": "redis",
	})

	return session.NewRedisStore(client.Client), client.Close, nil
}
