package reminder

import (
	"context"
	"errors"
	"time"

	"medsaver/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectReminder = `
	SELECT
		id,
		user_id,
		medicine_name,
		dosage,
		frequency,
		COALESCE(reminder_type, ''),
		COALESCE(specific_times, '{}'),
		to_char(start_date, 'YYYY-MM-DD'),
		to_char(end_date, 'YYYY-MM-DD'),
		is_active,
		COALESCE(notes, ''),
		created_at,
		updated_at
	FROM reminders
`

func scanReminder(row pgx.Row) (*Reminder, error) {
	var r Reminder
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.MedicineName,
		&r.Dosage,
		&r.Frequency,
		&r.ReminderType,
		&r.SpecificTimes,
		&r.StartDate,
		&r.EndDate,
		&r.IsActive,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectReminders(rows pgx.Rows) ([]Reminder, error) {
	defer rows.Close()

	out := []Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (p *PostgresRepository) Create(ctx context.Context, r *Reminder) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	return p.db.QueryRow(ctx, `
		INSERT INTO reminders (
			id,
			user_id,
			medicine_name,
			dosage,
			frequency,
			reminder_type,
			specific_times,
			start_date,
			end_date,
			is_active,
			notes
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8::date, $9::date, $10, NULLIF($11, ''))
		RETURNING created_at, updated_at
	`,
		r.ID,
		r.UserID,
		r.MedicineName,
		r.Dosage,
		r.Frequency,
		r.ReminderType,
		r.SpecificTimes,
		r.StartDate,
		r.EndDate,
		r.IsActive,
		r.Notes,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
}

func (p *PostgresRepository) Get(ctx context.Context, id string) (*Reminder, error) {
	r, err := scanReminder(p.db.QueryRow(ctx, selectReminder+`WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return r, err
}

func (p *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Reminder, error) {
	rows, err := p.db.Query(ctx, selectReminder+`
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectReminders(rows)
}

func (p *PostgresRepository) Save(ctx context.Context, r *Reminder) error {
	err := p.db.QueryRow(ctx, `
		UPDATE reminders
		SET medicine_name = $2,
		    dosage = $3,
		    frequency = $4,
		    reminder_type = NULLIF($5, ''),
		    specific_times = $6,
		    start_date = $7::date,
		    end_date = $8::date,
		    is_active = $9,
		    notes = NULLIF($10, ''),
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`,
		r.ID,
		r.MedicineName,
		r.Dosage,
		r.Frequency,
		r.ReminderType,
		r.SpecificTimes,
		r.StartDate,
		r.EndDate,
		r.IsActive,
		r.Notes,
	).Scan(&r.UpdatedAt)
	if db.IsNoRows(err) {
		return ErrNotFound
	}
	return err
}

func (p *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	cmd, err := p.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if db.IsNoRows(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresRepository) Due(ctx context.Context, date, hhmm string) ([]Reminder, error) {
	rows, err := p.db.Query(ctx, selectReminder+`
		WHERE is_active = true
		  AND start_date <= $1::date
		  AND (end_date IS NULL OR end_date >= $1::date)
		  AND $2 = ANY(specific_times)
		ORDER BY id
	`, date, hhmm)
	if err != nil {
		return nil, err
	}
	return collectReminders(rows)
}

func (p *PostgresRepository) CreateLog(ctx context.Context, l *Log) (bool, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	err := p.db.QueryRow(ctx, `
		INSERT INTO reminder_logs (id, reminder_id, user_id, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (reminder_id, scheduled_time) DO NOTHING
		RETURNING created_at
	`, l.ID, l.ReminderID, l.UserID, l.ScheduledTime, l.Status).Scan(&l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const selectLog = `
	SELECT id, reminder_id, user_id, scheduled_time, status, taken_at, notes, created_at
	FROM reminder_logs
`

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	if err := row.Scan(
		&l.ID,
		&l.ReminderID,
		&l.UserID,
		&l.ScheduledTime,
		&l.Status,
		&l.TakenAt,
		&l.Notes,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func (p *PostgresRepository) ListLogs(ctx context.Context, reminderID string) ([]Log, error) {
	rows, err := p.db.Query(ctx, selectLog+`
		WHERE reminder_id = $1
		ORDER BY scheduled_time DESC
	`, reminderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (p *PostgresRepository) MarkTaken(ctx context.Context, reminderID, logID string, takenAt time.Time, notes *string) (*Log, error) {
	l, err := scanLog(p.db.QueryRow(ctx, `
		UPDATE reminder_logs
		SET status = $3,
		    taken_at = $4,
		    notes = COALESCE($5, notes)
		WHERE id = $1 AND reminder_id = $2
		RETURNING id, reminder_id, user_id, scheduled_time, status, taken_at, notes, created_at
	`, logID, reminderID, StatusTaken, takenAt, notes))
	if db.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return l, err
}
