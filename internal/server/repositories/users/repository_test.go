package users

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepositoryContract runs the behaviour every Repository must share.
func testRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("create assigns id and lookups find it", func(t *testing.T) {
		repo := newRepo(t)

		u, err := repo.CreateUser(ctx, &models.User{Username: "user123", PasswordHash: "h", Email: "user@example.com"})
		require.NoError(t, err)
		assert.NotZero(t, u.ID)

		byName, err := repo.FindByUsername(ctx, "user123")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
		assert.Equal(t, "user@example.com", byName.Email)
		assert.Equal(t, "h", byName.PasswordHash)
		assert.False(t, byName.Verified)

		byEmail, err := repo.FindByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("ids are distinct", func(t *testing.T) {
		repo := newRepo(t)

		a, err := repo.CreateUser(ctx, &models.User{Username: "aaa", PasswordHash: "h", Email: "a@example.com"})
		require.NoError(t, err)
		b, err := repo.CreateUser(ctx, &models.User{Username: "bbb", PasswordHash: "h", Email: "b@example.com"})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.CreateUser(ctx, &models.User{Username: "dup", PasswordHash: "h", Email: "one@example.com"})
		require.NoError(t, err)
		_, err = repo.CreateUser(ctx, &models.User{Username: "dup", PasswordHash: "h", Email: "two@example.com"})
		assert.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)

		_, err = repo.FindByEmail(ctx, "two@example.com")
		assert.True(t, errors.Is(err, common.ErrorNotFound), "no partial insert")
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.CreateUser(ctx, &models.User{Username: "first", PasswordHash: "h", Email: "same@example.com"})
		require.NoError(t, err)
		_, err = repo.CreateUser(ctx, &models.User{Username: "second", PasswordHash: "h", Email: "same@example.com"})
		assert.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)

		_, err = repo.FindByUsername(ctx, "second")
		assert.True(t, errors.Is(err, common.ErrorNotFound), "no partial insert")
	})

	t.Run("absent user", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByUsername(ctx, "ghost")
		assert.True(t, errors.Is(err, common.ErrorNotFound))
		_, err = repo.FindByEmail(ctx, "ghost@example.com")
		assert.True(t, errors.Is(err, common.ErrorNotFound))
	})
}
