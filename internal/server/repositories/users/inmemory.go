package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/dmitrijs2005/alumniauth/internal/server/models"
)

// InMemoryRepository keeps users in process memory. The email index is
// checked and written under one lock, so concurrent signups for the same
// email cannot both succeed.
type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]models.User
	byEmail map[string]int64
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[int64]models.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = r.now().UTC()

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
