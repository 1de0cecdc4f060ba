// Package session mirrors the server-side auth lifecycle on the client: whether
// the user is signed in, the current access token, the loaded user, a pending
// alert and a loading flag. State only changes through the actions in action.go.
package session

import "go-ticket-tracker/internal/model"

const AlertDanger = "danger"

type Alert struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type State struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	AccessToken     *string         `json:"accessToken"`
	User            *model.Identity `json:"user"`
	Alert           *Alert          `json:"alert"`
	Loading         bool            `json:"loading"`
}

// Restore builds the state a client starts with: any persisted token is picked
// up but not trusted until the user has been loaded with it.
func Restore(slot TokenSlot) State {
	state := State{Loading: true}
	if slot == nil {
		return state
	}

	if tok, ok, err := slot.Get(); err == nil && ok {
		state.AccessToken = &tok
	}
	return state
}

// Token returns the access token or "" when none is held.
func (s State) Token() string {
	if s.AccessToken == nil {
		return ""
	}
	return *s.AccessToken
}
