package http

import (
	"errors"
	"strings"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization header")
	ErrInvalidBearerFormat  = errors.New("invalid bearer authorization format")
	ErrEmptyBearerToken     = errors.New("empty bearer token")
)

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthorization
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidBearerFormat
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyBearerToken
	}
	return token, nil
}
