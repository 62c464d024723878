package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrUserNotFound      = fmt.Errorf("user not found")
	ErrGroupNotFound     = fmt.Errorf("group not found")
	ErrThreadNotFound    = fmt.Errorf("call thread not found")
	ErrCallNotFound      = fmt.Errorf("call record not found")
	ErrUserAlreadyExists = fmt.Errorf("user already exists")

	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	// ErrProvisioning is fatal to the initiating call: without a room URL
	// there is nothing to signal.
	ErrProvisioning = fmt.Errorf("room provisioning failed")

	// ErrEndpointClosed is swallowed by the broadcast router; a dead
	// connection is equivalent to an offline user.
	ErrEndpointClosed = fmt.Errorf("connection endpoint closed")
)

// Is reports whether err matches target, unwrapping as needed. Re-exported
// so callers compare sentinels without importing the standard errors package
// next to this one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MapToHTTPStatus translates domain sentinels into HTTP status codes.
// Unknown errors are treated as internal failures.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrThreadNotFound),
		errors.Is(err, ErrCallNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrProvisioning):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
