package common

import "errors"

// Business logic errors. Services return these (possibly wrapped with %w);
// handlers translate them to HTTP statuses: ErrValidation→400, ErrNotFound→404,
// ErrForbidden→403, anything else→500.
var (
	// General errors
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("invalid input")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")

	// Announcement errors
	ErrAnnouncementNotFound    = errors.New("announcement not found")
	ErrAnnouncementAlreadyRead = errors.New("announcement already confirmed")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation reports whether err maps to a 400.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
