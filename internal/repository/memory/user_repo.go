package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    map[string]model.User{},
		byEmail: map[string]string{},
	}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) Create(_ context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return model.ErrUserAlreadyExists
	}
	if _, exists := r.byID[u.ID]; exists {
		return model.ErrUserAlreadyExists
	}

	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role model.Role) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return u, nil
}

func (r *UserRepository) List(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
