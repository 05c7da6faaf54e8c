package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"medsaver/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("profile not found")
	ErrExists       = errors.New("profile already exists")
	ErrInvalidInput = errors.New("invalid profile input")
)

const avatarPrefix = "avatars"

type Service struct {
	repo  Repository
	store storage.Storage
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, store storage.Storage, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, store: store, log: log, now: time.Now}
}

// CreateForUser creates the empty profile row that registration implies.
func (s *Service) CreateForUser(ctx context.Context, userID, fullName, email string) error {
	p := &Profile{
		UserID:                  userID,
		NotificationPreferences: DefaultPreferences(),
	}
	if fullName != "" {
		p.FullName = &fullName
	}
	if email != "" {
		p.Email = &email
	}
	return s.repo.Create(ctx, p)
}

// Get returns the caller's profile. A caller without a profile row gets one
// created on the fly from the token email.
func (s *Service) Get(ctx context.Context, userID, email string) (*View, error) {
	p, err := s.ensure(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *Service) ensure(ctx context.Context, userID, email string) (*Profile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		if err := s.CreateForUser(ctx, userID, "", email); err != nil && !errors.Is(err, ErrExists) {
			return nil, fmt.Errorf("create missing profile: %w", err)
		}
		p, err = s.repo.GetByUser(ctx, userID)
	}
	return p, err
}

// GetByUser returns the stored profile without any view fields.
func (s *Service) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Update applies u to the caller's profile, creating the profile first when
// the caller has none, the same way Get does.
func (s *Service) Update(ctx context.Context, userID, email string, u Update) (*View, error) {
	if u.DateOfBirth != nil && *u.DateOfBirth != "" {
		if _, err := time.Parse(time.DateOnly, *u.DateOfBirth); err != nil {
			return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	p, err := s.ensure(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	apply(p, u)

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("profile updated", zap.String("user_id", userID))
	return s.view(p), nil
}

// UploadAvatar stores the image and points avatar_url at it. The profile is
// resolved before the upload so a failed lookup leaves no object behind.
func (s *Service) UploadAvatar(ctx context.Context, userID, email string, body io.Reader, filename, contentType string) (*View, error) {
	if err := storage.ValidateImageName(filename); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.ensure(ctx, userID, email); err != nil {
		return nil, err
	}

	key := storage.ObjectKey(avatarPrefix, userID, filename)

	url, err := s.store.Upload(ctx, key, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	return s.Update(ctx, userID, email, Update{AvatarURL: &url})
}

func (s *Service) view(p *Profile) *View {
	email := ""
	if p.Email != nil {
		email = *p.Email
	}
	var fullName string
	if p.FullName != nil {
		fullName = *p.FullName
	}
	v := &View{
		Profile:     p,
		DisplayName: DisplayName(fullName, email),
	}
	if p.DateOfBirth != nil {
		if dob, err := time.Parse(time.DateOnly, *p.DateOfBirth); err == nil {
			age := Age(dob, s.now())
			v.Age = &age
		}
	}
	return v
}

func apply(p *Profile, u Update) {
	if u.FullName != nil {
		p.FullName = blankToNil(u.FullName)
	}
	if u.Phone != nil {
		p.Phone = blankToNil(u.Phone)
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = blankToNil(u.DateOfBirth)
	}
	if u.MedicalConditions != nil {
		p.MedicalConditions = cleanList(*u.MedicalConditions)
	}
	if u.Allergies != nil {
		p.Allergies = cleanList(*u.Allergies)
	}
	if u.EmergencyContactName != nil {
		p.EmergencyContactName = blankToNil(u.EmergencyContactName)
	}
	if u.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = blankToNil(u.EmergencyContactPhone)
	}
	if u.NotificationPreferences != nil {
		p.NotificationPreferences = *u.NotificationPreferences
	}
	if u.AvatarURL != nil {
		p.AvatarURL = blankToNil(u.AvatarURL)
	}
}

func blankToNil(s *string) *string {
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DisplayName picks full name, then the email local part, then "User".
func DisplayName(fullName, email string) string {
	if name := strings.TrimSpace(fullName); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(email, "@"); local != "" {
		return local
	}
	return "User"
}

// Age is whole years between dob and now.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
