package scan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	scans map[string]Scan
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{scans: make(map[string]Scan)}
}

func (r *InMemoryRepository) Create(ctx context.Context, s *Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.ScanTimestamp.IsZero() {
		s.ScanTimestamp = time.Now()
	}
	r.scans[s.ID] = *s
	return nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Scan{}
	for _, s := range r.scans {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScanTimestamp.After(out[j].ScanTimestamp)
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}
