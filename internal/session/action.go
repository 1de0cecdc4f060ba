package session

import "go-ticket-tracker/internal/model"

// Action is a named transition of the session state.
type Action interface {
	ActionName() string
}

type (
	RegisterSuccess struct{ AccessToken string }
	LoginSuccess    struct{ AccessToken string }
	RegisterFail    struct{ Message string }
	LoginFail       struct{ Message string }
	// AuthError reports a rejected token. Unlike the login and register failures
	// it carries no message and clears any alert.
	AuthError  struct{}
	UserLoaded struct{ User model.Identity }
	Logout     struct{}
	// RefreshToken sets IsAuthenticated rather than leaving it unchanged, so a
	// session holding a token is never reported as signed out.
	RefreshToken struct{ AccessToken string }
	ClearAlerts  struct{}
	SetLoading   struct{ Loading bool }
)

func (RegisterSuccess) ActionName() string { return "REGISTER_SUCCESS" }
func (LoginSuccess) ActionName() string    { return "LOGIN_SUCCESS" }
func (RegisterFail) ActionName() string    { return "REGISTER_FAIL" }
func (LoginFail) ActionName() string       { return "LOGIN_FAIL" }
func (AuthError) ActionName() string       { return "AUTH_ERROR" }
func (UserLoaded) ActionName() string      { return "USER_LOADED" }
func (Logout) ActionName() string          { return "LOGOUT" }
func (RefreshToken) ActionName() string    { return "REFRESH_TOKEN" }
func (ClearAlerts) ActionName() string     { return "CLEAR_ALERTS" }
func (SetLoading) ActionName() string      { return "SET_LOADING" }
