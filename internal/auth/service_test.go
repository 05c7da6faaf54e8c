package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProfiles struct {
	calls []string
}

func (r *recordingProfiles) CreateForUser(ctx context.Context, userID, fullName, email string) error {
	r.calls = append(r.calls, userID+"|"+fullName+"|"+email)
	return nil
}

type flakyProfiles struct {
	failures int
}

func (f *flakyProfiles) CreateForUser(ctx context.Context, userID, fullName, email string) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("profiles table unavailable")
	}
	return nil
}

func TestRegister_ProfileFailureRollsBackUser(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()
	service := NewService(repo, &flakyProfiles{failures: 1}, nil)

	_, err := service.Register(ctx, "Asha", "asha@example.com", "pw")
	require.Error(t, err)

	exists, err := repo.ExistsByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	// a retry succeeds instead of reporting the email as taken
	user, err := service.Register(ctx, "Asha", "asha@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestInMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()
	user := &User{Email: "a@example.com"}
	require.NoError(t, repo.Save(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), ErrUserNotFound)
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, nil, nil)

	password := "Password@123"

	_, err := service.Register(context.Background(), "Test User", "test@example.com", password)
	require.NoError(t, err)

	user := repo.users["test@example.com"]
	require.NotNil(t, user, "user not found")
	assert.NotEqual(t, password, user.Password, "password was stored in plain text")
}

func TestRegister_CreatesProfileAndDefaultsRole(t *testing.T) {
	profiles := &recordingProfiles{}
	service := NewService(NewInMemoryUserRepository(), profiles, nil)

	user, err := service.Register(context.Background(), " Asha ", "Asha@Example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, []string{user.ID + "|Asha|asha@example.com"}, profiles.calls)
}

func TestRegister_Errors(t *testing.T) {
	ctx := context.Background()
	service := NewService(NewInMemoryUserRepository(), nil, nil)

	_, err := service.Register(ctx, "", "a@example.com", "pw")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.Register(ctx, "A", "a@example.com", "pw")
	require.NoError(t, err)

	_, err = service.Register(ctx, "B", "A@example.com", "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	service := NewService(NewInMemoryUserRepository(), nil, nil)

	registered, err := service.Register(ctx, "A", "a@example.com", "Password@123")
	require.NoError(t, err)

	user, err := service.Login(ctx, "a@example.com", "Password@123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = service.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody@example.com", "Password@123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetRole(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := service.Register(ctx, "Ops", "ops@example.com", "Password@123")
	require.NoError(t, err)

	require.NoError(t, service.SetRole(ctx, "OPS@example.com", RoleAdmin))
	assert.Equal(t, RoleAdmin, repo.users["ops@example.com"].Role)

	assert.ErrorIs(t, service.SetRole(ctx, "ops@example.com", "ROOT"), ErrUnknownRole)
	assert.ErrorIs(t, service.SetRole(ctx, "nobody@example.com", RoleAdmin), ErrUserNotFound)
}
