package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUser(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
