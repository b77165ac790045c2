package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers for the
// SplitDivision web frontend. Each entry in allowedOrigins must be a full
// origin (scheme + host, no trailing slash). Credentials are allowed because
// the frontend sends its session cookie with every API call; preflight
// responses are cached for an hour to keep the PUT/DELETE round trips cheap.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           3600,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
