// Package client talks to the ticket tracker API and keeps a session.Store in
// step with every auth call it makes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/session"
)

// APIError is a failed response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	refresh session.TokenSlot
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for baseURL. accessSlot backs the session's access token;
// refreshSlot holds the refresh token between runs.
func New(baseURL string, accessSlot session.TokenSlot, refreshSlot session.TokenSlot, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session.NewStore(session.Reducer{Slot: accessSlot}, session.Restore(accessSlot)),
		refresh: refreshSlot,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.refresh == nil {
		c.refresh = &session.MemorySlot{}
	}
	return c
}

func (c *Client) State() session.State {
	return c.session.State()
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (session.State, error) {
	var pair model.TokenPair
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &pair); err != nil {
		return c.session.Dispatch(session.RegisterFail{Message: failureMessage(err)}), err
	}

	return c.signedIn(pair, session.RegisterSuccess{AccessToken: pair.AccessToken})
}

func (c *Client) Login(ctx context.Context, email string, password string) (session.State, error) {
	var pair model.TokenPair
	err := c.call(ctx, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{Email: email, Password: password}, &pair)
	if err != nil {
		return c.session.Dispatch(session.LoginFail{Message: failureMessage(err)}), err
	}

	return c.signedIn(pair, session.LoginSuccess{AccessToken: pair.AccessToken})
}

// LoadUser fetches the identity behind the current access token.
func (c *Client) LoadUser(ctx context.Context) (session.State, error) {
	var identity model.Identity
	if err := c.call(ctx, http.MethodGet, "/api/v1/auth/me", c.State().Token(), nil, &identity); err != nil {
		return c.session.Dispatch(session.AuthError{}), err
	}

	return c.session.Dispatch(session.UserLoaded{User: identity}), nil
}

// Refresh trades the stored refresh token for a new access token. When the
// server rotates refresh tokens the replacement is stored too.
func (c *Client) Refresh(ctx context.Context) (session.State, error) {
	raw, ok, err := c.refresh.Get()
	if err != nil {
		return c.State(), err
	}
	if !ok {
		return c.session.Dispatch(session.AuthError{}), &APIError{Status: http.StatusUnauthorized, Code: "NO_REFRESH_TOKEN", Message: "No refresh token"}
	}

	var result model.RefreshResult
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/refresh", "", model.RefreshRequest{RefreshToken: raw}, &result); err != nil {
		if isUnauthorized(err) {
			_ = c.refresh.Clear()
		}
		return c.session.Dispatch(session.AuthError{}), err
	}

	if result.RefreshToken != "" {
		if err := c.refresh.Set(result.RefreshToken); err != nil {
			return c.State(), err
		}
	}

	return c.session.Dispatch(session.RefreshToken{AccessToken: result.AccessToken}), nil
}

// Logout revokes the refresh token on the server and ends the local session. An
// expired or missing access token is renewed once so the revocation still goes
// through. The refresh token is only forgotten once the server no longer holds
// it; on any other failure it is kept so logout can be retried.
func (c *Client) Logout(ctx context.Context) (session.State, error) {
	raw, ok, err := c.refresh.Get()
	if err != nil {
		return c.State(), err
	}
	if !ok {
		return c.session.Dispatch(session.Logout{}), nil
	}

	err = c.revoke(ctx, raw)
	if isUnauthorized(err) {
		_, refreshErr := c.Refresh(ctx)
		switch {
		case refreshErr == nil:
			// rotation may have replaced the token we were about to revoke
			if current, ok, _ := c.refresh.Get(); ok {
				raw = current
			}
			err = c.revoke(ctx, raw)
		case isUnauthorized(refreshErr):
			// the server rejected the refresh token, so there is nothing left to revoke
			err = nil
		default:
			err = refreshErr
		}
	}

	if err != nil {
		return c.session.Dispatch(session.Logout{}), err
	}

	if clearErr := c.refresh.Clear(); clearErr != nil {
		return c.session.Dispatch(session.Logout{}), clearErr
	}
	return c.session.Dispatch(session.Logout{}), nil
}

// LogoutAll revokes every refresh token of the signed-in user and ends the local session.
func (c *Client) LogoutAll(ctx context.Context) (session.State, error) {
	if err := c.Do(ctx, http.MethodPost, "/api/v1/auth/logout-all", nil, nil); err != nil {
		return c.State(), err
	}

	_ = c.refresh.Clear()
	return c.session.Dispatch(session.Logout{}), nil
}

func (c *Client) revoke(ctx context.Context, raw string) error {
	return c.call(ctx, http.MethodPost, "/api/v1/auth/logout", c.State().Token(), model.RefreshRequest{RefreshToken: raw}, nil)
}

// Do performs an authenticated request. A 401 triggers one refresh and a retry.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	err := c.call(ctx, method, path, c.State().Token(), body, out)

	if !isUnauthorized(err) {
		return err
	}

	if _, refreshErr := c.Refresh(ctx); refreshErr != nil {
		return err
	}
	c.session.Dispatch(session.SetLoading{Loading: false})

	return c.call(ctx, method, path, c.State().Token(), body, out)
}

func (c *Client) signedIn(pair model.TokenPair, action session.Action) (session.State, error) {
	if err := c.refresh.Set(pair.RefreshToken); err != nil {
		return c.State(), fmt.Errorf("store refresh token: %w", err)
	}

	c.session.Dispatch(action)
	return c.session.Dispatch(session.UserLoaded{User: pair.User}), nil
}

func (c *Client) call(ctx context.Context, method string, path string, bearer string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *model.APIError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &APIError{Status: resp.StatusCode, Code: "BAD_RESPONSE", Message: err.Error()}
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: http.StatusText(resp.StatusCode)}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
