package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/dmitrijs2005/placeholder/internal/server/models"
)

// InMemoryRepository keeps users in process memory. It backs tests and the
// server when no database DSN is configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byLogin map[string]string
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*models.User),
		byLogin: make(map[string]string),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byLogin[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.CreatedAt = r.now()
	stored := clone(user)
	r.byID[stored.ID] = stored
	r.byLogin[stored.UserName] = stored.ID

	return user, nil
}

func (r *InMemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		result = append(result, clone(u))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].UserName < result[j].UserName
	})
	return result, nil
}

func (r *InMemoryRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byLogin[username]
	return ok, nil
}

func (r *InMemoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if id, ok := r.byLogin[user.UserName]; ok && id != user.ID {
		return nil, common.ErrorAlreadyExists
	}
	for id, u := range r.byID {
		if id != user.ID && u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.CreatedAt = old.CreatedAt
	delete(r.byLogin, old.UserName)
	stored := clone(user)
	r.byID[stored.ID] = stored
	r.byLogin[stored.UserName] = stored.ID

	return user, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byLogin, u.UserName)
	delete(r.byID, id)
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}
