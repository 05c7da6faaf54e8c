package auth

import "context"

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateRole(ctx context.Context, email, role string) error
	Delete(ctx context.Context, id string) error
}

// ProfileInitializer creates the empty profile row that every account owns.
type ProfileInitializer interface {
	CreateForUser(ctx context.Context, userID, fullName, email string) error
}
