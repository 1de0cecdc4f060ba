package session

import "log/slog"

// Reducer applies actions to a State. Its only side effect is keeping Slot in step
// with the access token: written on success, cleared on failure and logout.
type Reducer struct {
	Slot TokenSlot
}

func (r Reducer) Reduce(state State, action Action) State {
	next := state

	switch a := action.(type) {
	case RegisterSuccess:
		r.signIn(&next, a.AccessToken)
	case LoginSuccess:
		r.signIn(&next, a.AccessToken)

	case RegisterFail:
		r.signOut(&next)
		next.Alert = &Alert{Message: a.Message, Kind: AlertDanger}
	case LoginFail:
		r.signOut(&next)
		next.Alert = &Alert{Message: a.Message, Kind: AlertDanger}
	case AuthError:
		r.signOut(&next)

	case UserLoaded:
		user := a.User
		next.IsAuthenticated = true
		next.User = &user
		next.Alert = nil
		next.Loading = false

	case Logout:
		r.signOut(&next)
		next.User = nil

	case RefreshToken:
		r.persist(a.AccessToken)
		tok := a.AccessToken
		// set rather than kept: a held token means an authenticated session
		next.IsAuthenticated = true
		next.AccessToken = &tok
		next.Alert = nil
		next.Loading = true

	case ClearAlerts:
		next.Alert = nil

	case SetLoading:
		next.Loading = a.Loading
	}

	return next
}

func (r Reducer) signIn(next *State, token string) {
	r.persist(token)
	next.IsAuthenticated = true
	next.AccessToken = &token
	next.Alert = nil
	next.Loading = false
}

func (r Reducer) signOut(next *State) {
	if r.Slot != nil {
		if err := r.Slot.Clear(); err != nil {
			slog.Warn("clear persisted access token", "error", err)
		}
	}
	next.IsAuthenticated = false
	next.AccessToken = nil
	next.Alert = nil
	next.Loading = false
}

func (r Reducer) persist(token string) {
	if r.Slot == nil {
		return
	}
	if err := r.Slot.Set(token); err != nil {
		slog.Warn("persist access token", "error", err)
	}
}
