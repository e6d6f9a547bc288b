package auth

import (
	"errors"
	"fmt"
)

// ErrorCode represents token provisioning error categories.
type ErrorCode string

const (
	// ErrCodeConfig indicates missing or invalid provider configuration.
	// Raised before any network call is attempted; not retryable.
	ErrCodeConfig ErrorCode = "invalid_config"
	// ErrCodeGrantRejected indicates the token endpoint rejected the
	// client credentials grant (non-2xx response).
	ErrCodeGrantRejected ErrorCode = "grant_rejected"
	// ErrCodeBadTokenResponse indicates the token endpoint answered with
	// a malformed body or one missing the access token.
	ErrCodeBadTokenResponse ErrorCode = "bad_token_response"
	// ErrCodeEndpointUnreachable indicates a transport failure reaching
	// the token endpoint (DNS, connection refused, timeout).
	ErrCodeEndpointUnreachable ErrorCode = "endpoint_unreachable"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeConfig:              "Invalid token provider configuration",
	ErrCodeGrantRejected:       "Token endpoint rejected the grant",
	ErrCodeBadTokenResponse:    "Malformed token endpoint response",
	ErrCodeEndpointUnreachable: "Token endpoint unreachable",
}

// Error wraps token provisioning errors with a stable code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Message
	if base == "" {
		base = string(e.Code)
	}
	if e.Err == nil {
		return base
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// IsConfiguration reports whether err is a configuration error, raised
// before any network call was made.
func IsConfiguration(err error) bool {
	return hasCode(err, ErrCodeConfig)
}

// IsAuthentication reports whether err originated in token provisioning
// rather than in the resource API itself. Transport failures while
// reaching the token endpoint count as authentication errors.
func IsAuthentication(err error) bool {
	return hasCode(err, ErrCodeGrantRejected) ||
		hasCode(err, ErrCodeBadTokenResponse) ||
		hasCode(err, ErrCodeEndpointUnreachable)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
