package identity

import "net/http"

// Error is a business-rule failure with the HTTP status it maps to. The
// message is the exact text surfaced to the caller, so pairs of failures
// that must stay indistinguishable (unknown email vs wrong password,
// unknown vs expired token) share a single value.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrDuplicateIdentity     = &Error{http.StatusConflict, "User with this email or username already exists"}
	ErrInvalidCredentials    = &Error{http.StatusUnauthorized, "Invalid credentials"}
	ErrEmailNotConfirmed     = &Error{http.StatusUnauthorized, "Please confirm your email before logging in"}
	ErrInvalidOrExpiredToken = &Error{http.StatusBadRequest, "Invalid or expired token"}
	ErrUnauthorized          = &Error{http.StatusUnauthorized, "Not authorized to access this route"}
	ErrUserNotFound          = &Error{http.StatusNotFound, "User not found"}
	ErrEmailDelivery         = &Error{http.StatusInternalServerError, "Email could not be sent"}
)

// Validation wraps a malformed-input message as a 400.
func Validation(msg string) *Error {
	return &Error{http.StatusBadRequest, msg}
}
