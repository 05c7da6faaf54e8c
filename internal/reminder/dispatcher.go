package reminder

import (
	"context"
	"fmt"
	"time"

	"medsaver/internal/profile"

	"go.uber.org/zap"
)

// ProfileReader resolves the owner of a reminder.
type ProfileReader interface {
	GetByUser(ctx context.Context, userID string) (*profile.Profile, error)
}

// Dispatcher fires the reminders due at the current minute.
type Dispatcher struct {
	repo     Repository
	profiles ProfileReader
	notifier Notifier
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
}

func NewDispatcher(repo Repository, profiles ProfileReader, notifier Notifier, loc *time.Location, log *zap.Logger) *Dispatcher {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		repo:     repo,
		profiles: profiles,
		notifier: notifier,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// Dispatch logs and notifies every reminder due now. A failure on one
// reminder is logged and does not stop the others.
func (d *Dispatcher) Dispatch(ctx context.Context) (*DispatchResult, error) {
	now := d.now().In(d.loc)
	currentDate := now.Format(time.DateOnly)
	currentTime := now.Format(clockLayout)

	due, err := d.repo.Due(ctx, currentDate, currentTime)
	if err != nil {
		return nil, fmt.Errorf("select due reminders: %w", err)
	}

	d.log.Debug("dispatching reminders",
		zap.String("date", currentDate),
		zap.String("time", currentTime),
		zap.Int("due", len(due)),
	)

	for i := range due {
		if err := d.fire(ctx, &due[i], currentDate, currentTime); err != nil {
			d.log.Error("reminder dispatch failed",
				zap.String("reminder_id", due[i].ID),
				zap.Error(err),
			)
		}
	}

	return &DispatchResult{
		Success:            true,
		ProcessedReminders: len(due),
		Timestamp:          now,
	}, nil
}

func (d *Dispatcher) fire(ctx context.Context, r *Reminder, date, hhmm string) error {
	owner, err := d.profiles.GetByUser(ctx, r.UserID)
	if err != nil {
		return fmt.Errorf("load owner profile: %w", err)
	}

	scheduled, err := ScheduledTime(date, hhmm)
	if err != nil {
		return err
	}

	inserted, err := d.repo.CreateLog(ctx, &Log{
		ReminderID:    r.ID,
		UserID:        r.UserID,
		ScheduledTime: scheduled,
		Status:        StatusPending,
	})
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	if !inserted {
		return nil
	}

	if !owner.NotificationPreferences.Reminder {
		d.log.Debug("reminder notifications disabled", zap.String("user_id", r.UserID))
		return nil
	}

	n := Notification{
		ReminderID:    r.ID,
		UserID:        r.UserID,
		MedicineName:  r.MedicineName,
		Dosage:        r.Dosage,
		ScheduledTime: scheduled,
	}
	if owner.Email != nil {
		n.Email = *owner.Email
	}
	if owner.FullName != nil {
		n.Name = *owner.FullName
	}
	return d.notifier.Notify(ctx, n)
}
