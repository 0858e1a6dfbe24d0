// Package services contains server-side business logic. This file implements
// AuthService, which registers users, checks credentials and hands out access
// tokens, reusing a user's cached token while it is still valid.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"golang.org/x/sync/errgroup"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// AuthService holds no mutable state of its own; users live in the
// repository and the last issued token per user lives in the cache.
type AuthService struct {
	users   users.Repository
	tokens  tokens.Cache
	hasher  auth.Hasher
	codec   *auth.Codec
	logger  logging.Logger
	metrics *metrics.Metrics
}

type Option func(*AuthService)

// WithMetrics makes the service count operations and issued tokens.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AuthService) { s.metrics = m }
}

func NewAuthService(ur users.Repository, tc tokens.Cache, h auth.Hasher, codec *auth.Codec, l logging.Logger, opts ...Option) *AuthService {
	if l == nil {
		l = logging.Nop{}
	}
	s := &AuthService{
		users:  ur,
		tokens: tc,
		hasher: h,
		codec:  codec,
		logger: l.With("module", "auth_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the user and returns its first token.
//
// Every invalid input and every identity collision yields
// common.ErrorRejected; the caller is never told which rule failed.
// Infrastructure failures are additionally tagged common.ErrorInternal.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (string, error) {
	token, err := s.register(ctx, username, password, email)
	s.metrics.Operation("register", result(err))
	return token, err
}

func (s *AuthService) register(ctx context.Context, username, password, email string) (string, error) {
	if username == "" || password == "" || email == "" {
		return s.reject(ctx, username, "missing field")
	}
	if n := len(username); n < minUsernameLen || n > maxUsernameLen || !usernamePattern.MatchString(username) {
		return s.reject(ctx, username, "invalid username")
	}
	if !emailPattern.MatchString(email) {
		return s.reject(ctx, username, "invalid email")
	}

	nameTaken, emailTaken, err := s.lookupIdentity(ctx, username, email)
	if err != nil {
		s.logger.Error(ctx, "identity lookup failed", "username", username, "error", err)
		return "", internal(common.ErrorRejected, err)
	}
	if nameTaken || emailTaken {
		// both reasons end up as the same rejection
		return s.reject(ctx, username, "identity taken", "username_taken", nameTaken, "email_taken", emailTaken)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", internal(common.ErrorRejected, err)
	}

	user, err := s.users.CreateUser(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return s.reject(ctx, username, "identity taken concurrently")
		}
		s.logger.Error(ctx, "user creation failed", "username", username, "error", err)
		return "", internal(common.ErrorRejected, err)
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return "", internal(common.ErrorRejected, err)
	}

	s.logger.Info(ctx, "user registered", "username", username, "user_id", user.ID)
	return token, nil
}

// lookupIdentity always runs both lookups, concurrently, and only decides
// once both are done.
func (s *AuthService) lookupIdentity(ctx context.Context, username, email string) (nameTaken, emailTaken bool, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		nameTaken, err = s.exists(gctx, s.users.FindByUsername, username)
		return err
	})
	g.Go(func() error {
		var err error
		emailTaken, err = s.exists(gctx, s.users.FindByEmail, email)
		return err
	})

	if err := g.Wait(); err != nil {
		return false, false, err
	}
	return nameTaken, emailTaken, nil
}

func (s *AuthService) exists(ctx context.Context, find func(context.Context, string) (*models.User, error), key string) (bool, error) {
	_, err := find(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Authorize checks the credentials. A cached token that is still valid for
// this user is returned as is; otherwise a fresh one is minted and cached.
// Any credential failure yields common.ErrorUnauthorized.
func (s *AuthService) Authorize(ctx context.Context, username, password string) (string, error) {
	token, err := s.authorize(ctx, username, password)
	s.metrics.Operation("authorize", result(err))
	return token, err
}

func (s *AuthService) authorize(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return s.deny(ctx, username, "missing field")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.deny(ctx, username, "unknown user")
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return "", internal(common.ErrorUnauthorized, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return s.deny(ctx, username, "wrong password")
	}

	cached, err := s.tokens.GetToken(ctx, username)
	switch {
	case err == nil:
		if s.codec.VerifyMatches(cached, user.ID, user.Username) {
			s.metrics.TokenIssued(metrics.TokenReused)
			s.logger.Debug(ctx, "cached token reused", "username", username)
			return cached, nil
		}
	case errors.Is(err, common.ErrorNotFound):
	default:
		s.logger.Warn(ctx, "token cache read failed, reissuing", "username", username, "error", err)
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return "", internal(common.ErrorUnauthorized, err)
	}
	return token, nil
}

// CurrentUser resolves a bearer token to the profile of its owner.
// It fails with common.ErrTokenExpired, common.ErrInvalidToken or
// common.ErrorNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	p, err := s.currentUser(ctx, token)
	s.metrics.Operation("current_user", result(err))
	return p, err
}

func (s *AuthService) currentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		s.logger.Info(ctx, "token rejected", "error", err)
		return nil, err
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: no username claim", common.ErrInvalidToken)
	}

	user, err := s.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "username", claims.Username, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if user.ID != claims.UserID {
		return nil, fmt.Errorf("%w: user id mismatch", common.ErrInvalidToken)
	}

	profile := &models.UserProfile{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}

	cached, err := s.tokens.GetToken(ctx, user.Username)
	switch {
	case err == nil:
		profile.Token = cached
	case errors.Is(err, common.ErrorNotFound):
	default:
		s.logger.Warn(ctx, "token cache read failed", "username", user.Username, "error", err)
	}

	return profile, nil
}

// issue mints a token for user and overwrites its cache entry. The token
// is valid on its own, so a failed cache write is logged and the token is
// still returned.
func (s *AuthService) issue(ctx context.Context, user *models.User) (string, error) {
	token, err := s.codec.Encode(user.ID, user.Username)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", err
	}

	if err := s.tokens.SetToken(ctx, user.Username, token); err != nil {
		s.logger.Error(ctx, "token cache write failed", "username", user.Username, "error", err)
	}

	s.metrics.TokenIssued(metrics.TokenMinted)
	return token, nil
}

func (s *AuthService) reject(ctx context.Context, username, reason string, args ...any) (string, error) {
	s.logger.Info(ctx, "registration rejected", append([]any{"username", username, "reason", reason}, args...)...)
	return "", common.ErrorRejected
}

func (s *AuthService) deny(ctx context.Context, username, reason string) (string, error) {
	s.logger.Info(ctx, "authorization denied", "username", username, "reason", reason)
	return "", common.ErrorUnauthorized
}

// internal tags an infrastructure failure with both the operation's
// rejection sentinel and common.ErrorInternal.
func internal(outcome, err error) error {
	return fmt.Errorf("%w: %w: %v", outcome, common.ErrorInternal, err)
}

func result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, common.ErrorInternal):
		return metrics.ResultError
	default:
		return metrics.ResultRejected
	}
}
