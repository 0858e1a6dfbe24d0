package users

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// MemoryRepository keeps users in process memory. Both uniqueness checks and
// the insert happen under one lock.
type MemoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byUsername: make(map[string]*models.User),
		byEmail:    make(map[string]*models.User),
	}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return nil, fmt.Errorf("%w: username", common.ErrorAlreadyExists)
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, fmt.Errorf("%w: email", common.ErrorAlreadyExists)
	}

	r.nextID++
	user.ID = r.nextID

	stored := *user
	r.byUsername[stored.Username] = &stored
	r.byEmail[stored.Email] = &stored

	return user, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(ctx, r.byUsername, username)
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, r.byEmail, email)
}

// Len is the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUsername)
}

func (r *MemoryRepository) find(ctx context.Context, index map[string]*models.User, key string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := index[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}
