package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notification is one reminder due for delivery.
type Notification struct {
	ReminderID    string
	UserID        string
	Email         string
	Name          string
	MedicineName  string
	Dosage        string
	ScheduledTime time.Time
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the log instead of delivering them.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, msg Notification) error {
	n.log.Info("reminder notification",
		zap.String("reminder_id", msg.ReminderID),
		zap.String("user_id", msg.UserID),
		zap.String("email", msg.Email),
		zap.String("name", msg.Name),
		zap.String("medicine", msg.MedicineName),
		zap.String("dosage", msg.Dosage),
		zap.Time("scheduled_time", msg.ScheduledTime),
	)
	return nil
}
