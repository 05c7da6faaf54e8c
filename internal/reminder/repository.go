package reminder

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	Get(ctx context.Context, id string) (*Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]Reminder, error)
	Save(ctx context.Context, r *Reminder) error
	Delete(ctx context.Context, userID, id string) error

	// Due returns active reminders covering date that fire at hhmm.
	Due(ctx context.Context, date, hhmm string) ([]Reminder, error)

	// CreateLog inserts l unless a log for the same reminder and scheduled
	// time exists. It reports whether a row was inserted.
	CreateLog(ctx context.Context, l *Log) (bool, error)
	ListLogs(ctx context.Context, reminderID string) ([]Log, error)
	MarkTaken(ctx context.Context, reminderID, logID string, takenAt time.Time, notes *string) (*Log, error)
}
