package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{profiles: make(map[string]Profile)}
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.UserID]; exists {
		return ErrExists
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.profiles[p.UserID] = *p
	return nil
}

func (r *InMemoryRepository) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.UserID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.profiles[p.UserID] = *p
	return nil
}
