package scan

import "context"

type Repository interface {
	Create(ctx context.Context, s *Scan) error
	ListByUser(ctx context.Context, userID string) ([]Scan, error)
	GetByID(ctx context.Context, id string) (*Scan, error)
}
