package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORS lets browser clients read the request id and rate limit headers. Credentials
// (the refreshToken cookie) are only allowed for an explicit origin list.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After", rateLimitLimitHeader, rateLimitRemainingHeader},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           3600,
	})

	return handler.Handler
}
