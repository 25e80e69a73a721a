package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication errors. All of them map to a single generic 401 at the
// HTTP boundary; the distinction only reaches the logs.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMalformedToken      = errors.New("malformed token")
	ErrTokenExpired        = errors.New("token expired")
	ErrUnknownUser         = errors.New("unknown user")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Repository errors
var (
	ErrNotFound = errors.New("not found")
)

// FieldError is a single structured validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is the full set of failures for one request. It is a
// reported result, not a fault: a duplicate email is a FieldError, never
// an error return.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Reason)
	}
	return strings.Join(parts, "; ")
}
