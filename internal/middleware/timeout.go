package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-ticket-tracker/internal/model"
)

// Timeout bounds API handlers. A request that overruns gets a 503 REQUEST_TIMEOUT
// envelope whose details carry the request id, so a client report can be matched
// to the access log line.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			http.TimeoutHandler(next, timeout, timeoutBody(RequestIDFromContext(r.Context()))).ServeHTTP(w, r)
		})
	}
}

func timeoutBody(requestID string) string {
	body, err := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "REQUEST_TIMEOUT", Message: "request timed out", Details: requestID},
	})
	if err != nil {
		return `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request timed out"}}`
	}
	return string(body)
}
