// Package session builds the cookie session store shared by all routes.
package session

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/constants"
)

const redisPoolSize = 10

// NewStore creates the store selected by SESSION_BACKEND
func NewStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		s, err := redisStore.NewStore(
			redisPoolSize,
			"tcp",
			cfg.RedisAddr(),
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		store = s
	case config.SessionBackendCookie:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}

	store.Options(Options(cfg.IsProduction()))
	return store, nil
}

// Options returns the cookie attributes for every session
func Options(secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure, // HTTPS only in release mode
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware installs the session under the project cookie name
func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(constants.SessionCookieName, store)
}
