package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownRole        = errors.New("unknown role")
)

type Service struct {
	repo     UserRepository
	profiles ProfileInitializer
	log      *zap.Logger
}

func NewService(repo UserRepository, profiles ProfileInitializer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, profiles: profiles, log: log}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleUser,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	if s.profiles != nil {
		if err := s.profiles.CreateForUser(ctx, user.ID, user.Name, user.Email); err != nil {
			// roll the account back so the email can be registered again
			if delErr := s.repo.Delete(context.WithoutCancel(ctx), user.ID); delErr != nil {
				s.log.Error("rollback user after profile failure",
					zap.String("user_id", user.ID), zap.Error(delErr))
			}
			return nil, fmt.Errorf("create profile: %w", err)
		}
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SetRole changes the role of the account registered under email.
func (s *Service) SetRole(ctx context.Context, email, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if err := s.repo.UpdateRole(ctx, strings.TrimSpace(email), role); err != nil {
		return err
	}
	s.log.Info("role updated", zap.String("email", email), zap.String("role", role))
	return nil
}
