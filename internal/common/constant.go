// Package common contains shared constants and sentinel errors used across
// authkeeper components.
package common

// TokenKeyPrefix prefixes the key under which the last issued token of a
// user is cached.
const TokenKeyPrefix = "token:"

// TokenType is reported next to every issued access token.
const TokenType = "bearer"

// TokenKey returns the cache key holding the token of username.
func TokenKey(username string) string {
	return TokenKeyPrefix + username
}
