package handler

import (
	"net/http"

	"go-ticket-tracker/internal/middleware"
	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/pkg/apierror"
)

// actorFromRequest returns the identity the auth middleware attached.
func actorFromRequest(r *http.Request) (model.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, apierror.Unauthenticated(model.ErrUnauthenticated, "authentication required")
	}
	return identity, nil
}
