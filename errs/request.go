package errs

import (
	"errors"
)

// Authentication Errors. Their text is what the client receives.
var (
	ErrMissingAuthHeader   = errors.New("Authorization header required")
	ErrMalformedAuthHeader = errors.New("Invalid authorization header format")
	ErrInvalidToken        = errors.New("Invalid or expired token")
	ErrInvalidTokenClaims  = errors.New("Invalid token")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
)

var (
	Unauthorized = NewUnauthorized(ErrInvalidToken)
)

// Authentication Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{StatusCode: 401, err: ErrMissingAuthHeader, Field: "authorization"}
}

func NewMalformedHeaderError() *ApiErr {
	return &ApiErr{StatusCode: 401, err: ErrMalformedAuthHeader, Field: "authorization"}
}

func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{StatusCode: 401, err: ErrInvalidToken, Field: "authorization", Cause: cause}
}

func NewInvalidTokenStructureError() *ApiErr {
	return &ApiErr{StatusCode: 401, err: ErrInvalidTokenClaims, Field: "authorization"}
}

// NewInvalidCredentialsError is shared by every sign-in failure so that
// unknown email, missing credential and wrong password look the same.
func NewInvalidCredentialsError() *ApiErr {
	return NewUnauthorized(ErrInvalidCredentials)
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingAuthHeader)
}

func IsMalformedHeaderError(err error) bool {
	return errors.Is(err, ErrMalformedAuthHeader)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsInvalidTokenStructureError(err error) bool {
	return errors.Is(err, ErrInvalidTokenClaims)
}
