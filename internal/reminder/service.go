package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("reminder not found")
	ErrInvalidInput = errors.New("invalid reminder input")
)

type Service struct {
	repo Repository
	loc  *time.Location
	log  *zap.Logger
	now  func() time.Time
}

// NewService builds the reminder service. loc is the zone "today" is
// computed in.
func NewService(repo Repository, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, loc: loc, log: log, now: time.Now}
}

func (s *Service) today() string {
	return s.now().In(s.loc).Format(time.DateOnly)
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (*Reminder, error) {
	name := strings.TrimSpace(in.MedicineName)
	if name == "" {
		return nil, fmt.Errorf("%w: medicine_name is required", ErrInvalidInput)
	}
	if len(in.SpecificTimes) == 0 {
		return nil, fmt.Errorf("%w: at least one time is required", ErrInvalidInput)
	}
	times, err := NormalizeTimes(in.SpecificTimes)
	if err != nil {
		return nil, err
	}

	r := &Reminder{
		UserID:        userID,
		MedicineName:  name,
		Dosage:        orDefault(in.Dosage, DefaultDosage),
		Frequency:     orDefault(in.Frequency, DefaultFrequency),
		ReminderType:  strings.TrimSpace(in.ReminderType),
		SpecificTimes: times,
		StartDate:     orDefault(in.StartDate, s.today()),
		EndDate:       blankToNil(in.EndDate),
		IsActive:      true,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if err := validateDates(r); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("reminder created",
		zap.String("user_id", userID),
		zap.String("reminder_id", r.ID),
		zap.Strings("times", r.SpecificTimes),
	)
	return r, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Reminder, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns a reminder owned by userID; other users' reminders read as
// missing.
func (s *Service) Get(ctx context.Context, userID, id string) (*Reminder, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, u Update) (*Reminder, error) {
	r, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if u.MedicineName != nil {
		name := strings.TrimSpace(*u.MedicineName)
		if name == "" {
			return nil, fmt.Errorf("%w: medicine_name is required", ErrInvalidInput)
		}
		r.MedicineName = name
	}
	if u.Dosage != nil {
		r.Dosage = orDefault(*u.Dosage, DefaultDosage)
	}
	if u.Frequency != nil {
		r.Frequency = orDefault(*u.Frequency, DefaultFrequency)
	}
	if u.ReminderType != nil {
		r.ReminderType = strings.TrimSpace(*u.ReminderType)
	}
	if u.SpecificTimes != nil {
		if len(*u.SpecificTimes) == 0 {
			return nil, fmt.Errorf("%w: at least one time is required", ErrInvalidInput)
		}
		times, err := NormalizeTimes(*u.SpecificTimes)
		if err != nil {
			return nil, err
		}
		r.SpecificTimes = times
	}
	if u.StartDate != nil {
		r.StartDate = orDefault(*u.StartDate, r.StartDate)
	}
	if u.EndDate != nil {
		r.EndDate = blankToNil(u.EndDate)
	}
	if u.IsActive != nil {
		r.IsActive = *u.IsActive
	}
	if u.Notes != nil {
		r.Notes = strings.TrimSpace(*u.Notes)
	}

	if err := validateDates(r); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Toggle flips is_active.
func (s *Service) Toggle(ctx context.Context, userID, id string) (*Reminder, error) {
	r, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	r.IsActive = !r.IsActive
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// MarkTaken records that the dose behind logID was taken now.
func (s *Service) MarkTaken(ctx context.Context, userID, id, logID string, notes *string) (*Log, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.repo.MarkTaken(ctx, id, logID, s.now(), blankToNil(notes))
}

func (s *Service) Logs(ctx context.Context, userID, id string) ([]Log, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.repo.ListLogs(ctx, id)
}

func (s *Service) Adherence(ctx context.Context, userID, id string) (Adherence, error) {
	logs, err := s.Logs(ctx, userID, id)
	if err != nil {
		return Adherence{}, err
	}
	return ComputeAdherence(logs), nil
}

// Upcoming returns the user's next n reminder firings after now.
func (s *Service) Upcoming(ctx context.Context, userID string, now time.Time, n int) ([]Occurrence, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NextOccurrences(reminders, now.In(s.loc), n), nil
}

// CountActive is the number of the user's active reminders.
func (s *Service) CountActive(ctx context.Context, userID string) (int, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range reminders {
		if r.IsActive {
			n++
		}
	}
	return n, nil
}

func validateDates(r *Reminder) error {
	if !validDate(r.StartDate) {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if r.EndDate != nil {
		if !validDate(*r.EndDate) {
			return fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		if *r.EndDate < r.StartDate {
			return fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
