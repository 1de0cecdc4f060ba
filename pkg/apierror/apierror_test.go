package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST: email is required", BadRequest("email is required", "").Error())
	assert.Equal(t, "BAD_REQUEST: invalid role (root)", BadRequest("invalid role", "root").Error())

	var nilErr *APIError
	assert.Equal(t, "", nilErr.Error())
}

func TestAPIError_UnwrapKeepsSentinel(t *testing.T) {
	sentinel := errors.New("no refresh token")
	err := Wrap(sentinel, "NO_REFRESH_TOKEN", "No refresh token", http.StatusUnauthorized)

	assert.ErrorIs(t, err, sentinel)

	var apiErr *APIError
	assert.True(t, errors.As(error(err), &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatus)
}

func TestForbiddenUsesStatusForbidden(t *testing.T) {
	err := Forbidden(nil, "insufficient role")
	assert.Equal(t, http.StatusForbidden, err.HTTPStatus)
	assert.Equal(t, "FORBIDDEN", err.Code)
}
