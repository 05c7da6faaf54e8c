package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*User),
	}
}

func (r *InMemoryUserRepository) Save(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Generate UUID if not already set
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	key := strings.ToLower(user.Email)
	if _, exists := r.users[key]; exists {
		return ErrEmailTaken
	}
	r.users[key] = user
	return nil
}

func (r *InMemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.users[strings.ToLower(email)]
	return exists, nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) UpdateRole(ctx context.Context, email, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, user := range r.users {
		if user.ID == id {
			delete(r.users, key)
			return nil
		}
	}
	return ErrUserNotFound
}
