package reminder

import "time"

const (
	StatusPending = "pending"
	StatusTaken   = "taken"
	StatusMissed  = "missed"

	DefaultDosage    = "1 tablet"
	DefaultFrequency = "daily"
)

type Reminder struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MedicineName  string    `json:"medicine_name"`
	Dosage        string    `json:"dosage"`
	Frequency     string    `json:"frequency"`
	ReminderType  string    `json:"reminder_type"`
	SpecificTimes []string  `json:"specific_times"` // "HH:MM", 24h
	StartDate     string    `json:"start_date"`     // YYYY-MM-DD
	EndDate       *string   `json:"end_date"`
	IsActive      bool      `json:"is_active"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Input creates a reminder. Empty optional fields take the defaults.
type Input struct {
	MedicineName  string   `json:"medicine_name"`
	Dosage        string   `json:"dosage"`
	Frequency     string   `json:"frequency"`
	ReminderType  string   `json:"reminder_type"`
	SpecificTimes []string `json:"specific_times"`
	StartDate     string   `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	IsActive      *bool    `json:"is_active"`
	Notes         string   `json:"notes"`
}

// Update changes only the non-nil fields.
type Update struct {
	MedicineName  *string   `json:"medicine_name"`
	Dosage        *string   `json:"dosage"`
	Frequency     *string   `json:"frequency"`
	ReminderType  *string   `json:"reminder_type"`
	SpecificTimes *[]string `json:"specific_times"`
	StartDate     *string   `json:"start_date"`
	EndDate       *string   `json:"end_date"` // "" clears
	IsActive      *bool     `json:"is_active"`
	Notes         *string   `json:"notes"`
}

// Log is one scheduled dose of a reminder.
type Log struct {
	ID            string     `json:"id"`
	ReminderID    string     `json:"reminder_id"`
	UserID        string     `json:"user_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	Status        string     `json:"status"`
	TakenAt       *time.Time `json:"taken_at"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Adherence struct {
	Taken   int    `json:"taken"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

type DispatchResult struct {
	Success            bool      `json:"success"`
	ProcessedReminders int       `json:"processed_reminders"`
	Timestamp          time.Time `json:"timestamp"`
}

// Occurrence is the next time a reminder fires.
type Occurrence struct {
	ReminderID   string    `json:"reminder_id"`
	MedicineName string    `json:"medicine_name"`
	Dosage       string    `json:"dosage"`
	Time         string    `json:"time"`
	At           time.Time `json:"at"`
}
