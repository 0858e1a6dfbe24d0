// Package tokens holds the key-value store that remembers the last access
// token issued to each user.
package tokens

import "context"

// Cache maps a username to the most recently issued token. Writes are
// last-write-wins. GetToken returns common.ErrorNotFound for a user without
// a cached token (never cached, or expired out of the cache).
type Cache interface {
	SetToken(ctx context.Context, username, token string) error
	GetToken(ctx context.Context, username string) (string, error)
}
