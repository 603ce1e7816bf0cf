package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Authentication & Rate-Limiting Errors
var (
	ErrMissingToken    = errors.New("missing access token")
	ErrInvalidToken    = errors.New("invalid access token")
	ErrTooManyRequests = errors.New("too many requests")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Authorization header with a Bearer token is required",
		Field:      "authorization",
	}
}

func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "The access token is invalid or expired",
		Field:      "authorization",
		Cause:      cause,
	}
}

func NewTooManyRequestsError(window time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrTooManyRequests,
		Message:    "Too many requests, please try again later.",
		Details:    fmt.Sprintf("limit resets within %s", window),
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsTooManyRequestsError(err error) bool {
	return errors.Is(err, ErrTooManyRequests)
}
