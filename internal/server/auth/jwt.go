// Package auth holds the credential primitives of the service: password
// hashing and the signed, time-bound access token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the identity of the token owner. Expiry, issue time and a
// random token id come from the registered claims.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Codec mints and checks access tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

type CodecOption func(*Codec)

// WithClock replaces time.Now, both for minting and for expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec accepts HS256, HS384 or HS512 (empty means HS256) and a token
// lifetime of at least one minute.
func NewCodec(secret []byte, algorithm string, ttl time.Duration, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	if ttl < time.Minute {
		return nil, fmt.Errorf("token lifetime %s is below one minute", ttl)
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}

	var method jwt.SigningMethod
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	c := &Codec{secret: secret, method: method, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL is the lifetime given to every minted token.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode mints a token for the user expiring TTL from now.
func (c *Codec) Encode(userID int64, username string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(c.method, Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Decode verifies algorithm, signature and expiry. A correctly signed but
// expired token yields common.ErrTokenExpired, anything else that fails
// yields common.ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// VerifyMatches reports whether token is valid right now and was issued to
// exactly this userID and username.
func (c *Codec) VerifyMatches(token string, userID int64, username string) bool {
	claims, err := c.Decode(token)
	if err != nil {
		return false
	}
	return claims.UserID == userID && claims.Username == username
}
