package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/JonMunkholm/parseos/internal/config"
	"github.com/JonMunkholm/parseos/internal/logging"
)

// APIKeyAuth returns middleware that checks the X-API-Key header against the
// configured keys. With RequireAPIKey off every request passes; with it on
// and no keys configured every request is rejected.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			logger := logging.FromContext(r.Context()).With("path", r.URL.Path, "client_ip", ClientIP(r))

			switch key := r.Header.Get("X-API-Key"); {
			case key == "":
				logger.Warn("auth: missing API key")
				writeError(w, http.StatusUnauthorized, "missing API key", "AUTH001")
				return
			case !isValidAPIKey(key, cfg.APIKeys):
				logger.Warn("auth: invalid API key")
				writeError(w, http.StatusForbidden, "invalid API key", "AUTH002")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isValidAPIKey compares key with every configured key in constant time.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, k := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(k))
	}
	return valid == 1
}
