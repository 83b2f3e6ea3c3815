package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kareemadel/printshop-backend/pkg/config"
	"github.com/kareemadel/printshop-backend/pkg/logger"
)

// CartSession assigns each customer an opaque cart session id carried
// in a cookie. A missing or malformed cookie gets a fresh id.
func CartSession(cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			// Refresh the cookie lifetime on every request so the
			// cookie expires with the redis-side cart TTL.
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(cfg.SessionTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
