package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	// Token related errors
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenNotFound       = errors.New("token not found")
	ErrTokenConflict       = errors.New("token already stored")
	ErrNoRefreshToken      = errors.New("no refresh token")
	ErrInvalidRefreshToken = errors.New("refresh token invalid")

	// Permission/Access related errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Ticket related errors
	ErrTicketNotFound = errors.New("ticket not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
