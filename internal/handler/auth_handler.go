package handler

import (
	"net/http"
	"strings"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/service"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	tokens, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, tokens, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	tokens, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tokens, nil)
}

// Refresh accepts the token in the JSON body or, failing that, the refreshToken cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw, err := refreshTokenFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Refresh(r.Context(), raw)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	raw, err := refreshTokenFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Logout(r.Context(), actor, raw); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "logged out"}, nil)
}

// LogoutAll revokes every refresh token the caller holds, signing out all devices.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.LogoutAll(r.Context(), actor.ID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "logged out everywhere"}, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, actor, nil)
}

func refreshTokenFromRequest(r *http.Request) (string, error) {
	var payload model.RefreshRequest
	if err := decodeJSON(r, &payload, true); err != nil {
		return "", err
	}

	raw := strings.TrimSpace(payload.RefreshToken)
	if raw == "" {
		if cookie, err := r.Cookie(refreshCookieName); err == nil {
			raw = strings.TrimSpace(cookie.Value)
		}
	}
	return raw, nil
}
