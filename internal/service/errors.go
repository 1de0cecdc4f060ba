package service

import (
	"net/http"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/pkg/apierror"
)

// Transport translations of the domain sentinels. Each keeps its sentinel as the
// cause so callers can still match with errors.Is.
var (
	errUnauthenticatedCredentials = apierror.Unauthenticated(model.ErrInvalidCredentials, "invalid credentials")
	errNoRefreshToken             = apierror.Wrap(model.ErrNoRefreshToken, "NO_REFRESH_TOKEN", "No refresh token", http.StatusUnauthorized)
	errInvalidRefreshToken        = apierror.Wrap(model.ErrInvalidRefreshToken, "INVALID_REFRESH_TOKEN", "Refresh token invalid", http.StatusUnauthorized)
	errForbidden                  = apierror.Forbidden(model.ErrForbidden, "not allowed to modify this resource")
)

func notFound(cause error, message string, id string) *apierror.APIError {
	err := apierror.Wrap(cause, "NOT_FOUND", message, http.StatusNotFound)
	err.Details = id
	return err
}

func invalidInput(message string, details string) *apierror.APIError {
	err := apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", message, http.StatusBadRequest)
	err.Details = details
	return err
}
