// Package users declares the user store contract and its postgres, sqlite
// and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository stores user identities. Username and email are each unique;
// CreateUser enforces both atomically and fails with common.ErrorAlreadyExists
// on a collision. Lookups of an absent user return common.ErrorNotFound.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
