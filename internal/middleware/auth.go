package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go-ticket-tracker/internal/metrics"
	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/token"
)

type AccessVerifier interface {
	VerifyAccessToken(raw string) (*token.Claims, error)
}

// IdentityResolver turns a verified subject into the identity attached to the request.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (model.Identity, error)
}

type identityContextKey struct{}

type AuthMiddleware struct {
	verifier AccessVerifier
	resolver IdentityResolver
	metrics  *metrics.Metrics
}

func NewAuthMiddleware(verifier AccessVerifier, resolver IdentityResolver, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, resolver: resolver, metrics: m}
}

// RequireAuth admits a request only when it carries a valid access token whose
// subject still exists. The downstream handler never runs otherwise.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			m.reject(w, "missing_token", http.StatusUnauthorized, "UNAUTHENTICATED", "missing or malformed authorization header")
			return
		}

		claims, err := m.verifier.VerifyAccessToken(raw)
		if err != nil {
			m.reject(w, "invalid_token", http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
			return
		}

		identity, err := m.resolver.ResolveIdentity(r.Context(), claims.UserID())
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				m.reject(w, "unknown_user", http.StatusUnauthorized, "UNAUTHENTICATED", "token subject no longer exists")
				return
			}

			slog.Error("identity lookup failed", "user_id", claims.UserID(), "error", err)
			writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			return
		}

		noteUser(r.Context(), identity.ID)
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// RequireRoles must sit behind RequireAuth.
func (m *AuthMiddleware) RequireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	roleSet := make(map[model.Role]struct{}, len(allowed))
	for _, role := range allowed {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				m.reject(w, "no_identity", http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
				return
			}

			if _, permitted := roleSet[identity.Role]; !permitted {
				m.reject(w, "role_denied", http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, reason string, status int, code string, message string) {
	m.metrics.AuthRejected(reason)
	writeJSONError(w, status, code, message)
}

func ContextWithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(model.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}

	return raw, true
}
