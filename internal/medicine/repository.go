package medicine

import "context"

type CatalogueRepository interface {
	SearchByName(ctx context.Context, query string, limit int) ([]CatalogueEntry, error)
	Import(ctx context.Context, entries []CatalogueEntry) (int64, error)
}

type SearchRepository interface {
	Create(ctx context.Context, s *Search) error
	ListByUser(ctx context.Context, userID string) ([]Search, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *Favorite) error
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
	Delete(ctx context.Context, userID, id string) error
}
