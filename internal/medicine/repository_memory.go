package medicine

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryCatalogue struct {
	mu      sync.RWMutex
	entries []CatalogueEntry
}

func NewInMemoryCatalogue() *InMemoryCatalogue {
	return &InMemoryCatalogue{}
}

func (r *InMemoryCatalogue) SearchByName(ctx context.Context, query string, limit int) ([]CatalogueEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	out := []CatalogueEntry{}
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryCatalogue) Import(ctx context.Context, entries []CatalogueEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		e.ID = int64(len(r.entries) + 1)
		r.entries = append(r.entries, e)
	}
	return int64(len(entries)), nil
}

type InMemorySearchRepository struct {
	mu       sync.RWMutex
	searches []Search
}

func NewInMemorySearchRepository() *InMemorySearchRepository {
	return &InMemorySearchRepository{}
}

func (r *InMemorySearchRepository) Create(ctx context.Context, s *Search) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.SearchTimestamp.IsZero() {
		s.SearchTimestamp = time.Now()
	}
	r.searches = append(r.searches, *s)
	return nil
}

func (r *InMemorySearchRepository) ListByUser(ctx context.Context, userID string) ([]Search, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Search{}
	for _, s := range r.searches {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SearchTimestamp.After(out[j].SearchTimestamp)
	})
	return out, nil
}

type InMemoryFavoriteRepository struct {
	mu        sync.RWMutex
	favorites []Favorite
}

func NewInMemoryFavoriteRepository() *InMemoryFavoriteRepository {
	return &InMemoryFavoriteRepository{}
}

func (r *InMemoryFavoriteRepository) Create(ctx context.Context, f *Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.CreatedAt = time.Now()
	r.favorites = append(r.favorites, *f)
	return nil
}

func (r *InMemoryFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Favorite{}
	for i := len(r.favorites) - 1; i >= 0; i-- {
		if r.favorites[i].UserID == userID {
			out = append(out, r.favorites[i])
		}
	}
	return out, nil
}

func (r *InMemoryFavoriteRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.favorites {
		if f.ID == id && f.UserID == userID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
